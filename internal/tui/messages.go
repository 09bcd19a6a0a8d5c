package tui

import (
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/export"
	"github.com/mmcdole/photodeck/internal/paginate"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg carries the outcome of one page fetch. Req identifies the
// query key generation it was issued for.
type PageLoadedMsg struct {
	Req  paginate.Request
	Page domain.Page
	Err  error
}

// AlbumsLoadedMsg signals that the album ids for the picker are known
type AlbumsLoadedMsg struct {
	IDs []int
	Err error
}

// SearchDebounceMsg fires when the quiet period after an edit elapses
type SearchDebounceMsg struct {
	Seq uint64
}

// TableLoadMsg fires when the table's delayed next-page load is due
type TableLoadMsg struct {
	Gen uint64
}

// DraftSavedMsg signals that the bulk request draft was written
type DraftSavedMsg struct {
	Path  string
	Size  int64
	Count int
	Err   error
}

// BulkCloseMsg closes the bulk modal after a successful export
type BulkCloseMsg struct{}

// ClipboardMsg signals the result of an HTML table copy
type ClipboardMsg struct {
	Method export.Method
	Count  int
	Err    error
}

// OpenedMsg signals that a URL was handed to the viewer
type OpenedMsg struct {
	URL string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
