package window

import (
	"slices"

	"github.com/mmcdole/photodeck/internal/domain"
)

// QuickFilter is a client-side predicate over loaded photos. It never
// changes the query key.
type QuickFilter string

const (
	EvenIDs     QuickFilter = "even-ids"
	OddIDs      QuickFilter = "odd-ids"
	Albums1to5  QuickFilter = "album-1-5"
	Albums6to10 QuickFilter = "album-6-10"
)

// AllQuickFilters in toggle-key order (1-4)
var AllQuickFilters = []QuickFilter{EvenIDs, OddIDs, Albums1to5, Albums6to10}

// Label returns the chip text
func (q QuickFilter) Label() string {
	switch q {
	case EvenIDs:
		return "Even IDs"
	case OddIDs:
		return "Odd IDs"
	case Albums1to5:
		return "Albums 1-5"
	case Albums6to10:
		return "Albums 6-10"
	default:
		return string(q)
	}
}

// Match reports whether p passes the filter
func (q QuickFilter) Match(p domain.Photo) bool {
	switch q {
	case EvenIDs:
		return p.ID%2 == 0
	case OddIDs:
		return p.ID%2 != 0
	case Albums1to5:
		return p.AlbumID >= 1 && p.AlbumID <= 5
	case Albums6to10:
		return p.AlbumID >= 6 && p.AlbumID <= 10
	default:
		return true
	}
}

// QuickSet is the set of active quick filters. They combine with AND.
type QuickSet []QuickFilter

// Has reports whether q is active
func (s QuickSet) Has(q QuickFilter) bool {
	return slices.Contains(s, q)
}

// Toggle returns a copy with q flipped, keeping AllQuickFilters order
func (s QuickSet) Toggle(q QuickFilter) QuickSet {
	on := !s.Has(q)
	out := QuickSet{}
	for _, f := range AllQuickFilters {
		if f == q {
			if on {
				out = append(out, f)
			}
			continue
		}
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Apply returns the photos passing every active filter plus, for each,
// its index in photos. With no active filters rawIdx is nil and photos is
// returned as is.
func (s QuickSet) Apply(photos []domain.Photo) (filtered []domain.Photo, rawIdx []int) {
	if len(s) == 0 {
		return photos, nil
	}
	filtered = make([]domain.Photo, 0, len(photos))
	rawIdx = make([]int, 0, len(photos))
	for i, p := range photos {
		ok := true
		for _, q := range s {
			if !q.Match(p) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, p)
			rawIdx = append(rawIdx, i)
		}
	}
	return filtered, rawIdx
}

// IdentityIndex returns 0..n-1, the raw index map of an unfiltered view
func IdentityIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
