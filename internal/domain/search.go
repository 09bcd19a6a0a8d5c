package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SortOrder is the client-side ordering applied to each fetched page
type SortOrder int

const (
	SortIDAsc SortOrder = iota
	SortIDDesc
	SortTitleAsc
	SortTitleDesc
)

// AllSortOrders lists every order in picker display order
var AllSortOrders = []SortOrder{SortIDAsc, SortIDDesc, SortTitleAsc, SortTitleDesc}

// String returns the wire literal ("id-asc", ...)
func (s SortOrder) String() string {
	switch s {
	case SortIDAsc:
		return "id-asc"
	case SortIDDesc:
		return "id-desc"
	case SortTitleAsc:
		return "title-asc"
	case SortTitleDesc:
		return "title-desc"
	default:
		return "unknown"
	}
}

// Label returns the human readable name for pickers and the status bar
func (s SortOrder) Label() string {
	switch s {
	case SortIDAsc:
		return "ID (Ascending)"
	case SortIDDesc:
		return "ID (Descending)"
	case SortTitleAsc:
		return "Title (A-Z)"
	case SortTitleDesc:
		return "Title (Z-A)"
	default:
		return "Unknown"
	}
}

// ByTitle reports whether the order compares titles
func (s SortOrder) ByTitle() bool {
	return s == SortTitleAsc || s == SortTitleDesc
}

// Descending reports whether the order is reversed
func (s SortOrder) Descending() bool {
	return s == SortIDDesc || s == SortTitleDesc
}

// Next cycles through the orders
func (s SortOrder) Next() SortOrder {
	return AllSortOrders[(int(s)+1)%len(AllSortOrders)]
}

// ParseSortOrder parses a wire literal. Empty input yields SortIDAsc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id-asc":
		return SortIDAsc, nil
	case "id-desc":
		return SortIDDesc, nil
	case "title-asc":
		return SortTitleAsc, nil
	case "title-desc":
		return SortTitleDesc, nil
	default:
		return SortIDAsc, fmt.Errorf("unknown sort order %q", s)
	}
}

// PhotoFilters is the query key. Two equal values describe the same paged
// result set, so comparing with == decides whether paging restarts.
type PhotoFilters struct {
	Search  string
	AlbumID string // "" means all albums
	SortBy  SortOrder
}

// IsZero reports whether no filter narrows or reorders the result
func (f PhotoFilters) IsZero() bool {
	return f == PhotoFilters{}
}

// Key renders a stable string for logs and cache keys
func (f PhotoFilters) Key() string {
	album := f.AlbumID
	if album == "" {
		album = "all"
	}
	return fmt.Sprintf("album=%s|sort=%s|q=%s", album, f.SortBy, strings.ToLower(f.Search))
}

// AlbumNumber parses AlbumID. ok is false when no album filter is set.
func (f PhotoFilters) AlbumNumber() (n int, ok bool, err error) {
	if f.AlbumID == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(strings.TrimSpace(f.AlbumID))
	if err != nil || n < 1 {
		return 0, true, fmt.Errorf("%w: %q", ErrInvalidAlbum, f.AlbumID)
	}
	return n, true, nil
}
