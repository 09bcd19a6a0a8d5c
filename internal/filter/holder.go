// Package filter owns the user-editable query parameters. Search text is
// debounced: each edit hands out a sequence token, and only the token of
// the latest edit may commit once its quiet period elapses.
package filter

import (
	"strings"
	"time"

	"github.com/mmcdole/photodeck/internal/domain"
)

// DefaultDebounce is the quiet period before typed search text commits
const DefaultDebounce = 500 * time.Millisecond

// Holder keeps the draft search text and the committed filters
type Holder struct {
	draft     string
	committed domain.PhotoFilters
	seq       uint64
	debounce  time.Duration
}

// NewHolder returns a holder with empty filters. A non-positive debounce
// uses DefaultDebounce.
func NewHolder(debounce time.Duration) *Holder {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Holder{debounce: debounce}
}

// Debounce returns the quiet period
func (h *Holder) Debounce() time.Duration { return h.debounce }

// Draft returns the search text as typed
func (h *Holder) Draft() string { return h.draft }

// Committed returns the filters that currently key the paged result
func (h *Holder) Committed() domain.PhotoFilters { return h.committed }

// Pending reports whether typed text has not been committed yet
func (h *Holder) Pending() bool {
	return normalize(h.draft) != h.committed.Search
}

// SetDraft records an edit and returns the token that a timer must present
// to Fire. Any earlier token is invalidated.
func (h *Holder) SetDraft(text string) uint64 {
	h.draft = text
	h.seq++
	return h.seq
}

// Fire commits the draft if seq belongs to the latest edit and the text
// actually changed. It returns the new filters and whether they changed.
func (h *Holder) Fire(seq uint64) (domain.PhotoFilters, bool) {
	if seq != h.seq {
		return h.committed, false
	}
	search := normalize(h.draft)
	if search == h.committed.Search {
		return h.committed, false
	}
	h.committed.Search = search
	return h.committed, true
}

// Flush commits the draft immediately (e.g. on enter), cancelling any
// pending timer.
func (h *Holder) Flush() (domain.PhotoFilters, bool) {
	h.seq++
	return h.Fire(h.seq)
}

// SetAlbum commits an album filter immediately. "" clears it.
func (h *Holder) SetAlbum(albumID string) (domain.PhotoFilters, bool) {
	albumID = strings.TrimSpace(albumID)
	if albumID == h.committed.AlbumID {
		return h.committed, false
	}
	h.committed.AlbumID = albumID
	return h.committed, true
}

// SetSort commits a sort order immediately
func (h *Holder) SetSort(order domain.SortOrder) (domain.PhotoFilters, bool) {
	if order == h.committed.SortBy {
		return h.committed, false
	}
	h.committed.SortBy = order
	return h.committed, true
}

// Reset clears every filter immediately, including the draft
func (h *Holder) Reset() (domain.PhotoFilters, bool) {
	h.draft = ""
	h.seq++
	if h.committed.IsZero() {
		return h.committed, false
	}
	h.committed = domain.PhotoFilters{}
	return h.committed, true
}

func normalize(s string) string {
	return strings.TrimSpace(s)
}
