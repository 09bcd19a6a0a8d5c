package gallery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mmcdole/photodeck/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterByTitle keeps photos whose title contains search, ignoring case.
// An empty search returns photos unchanged.
func FilterByTitle(photos []domain.Photo, search string) []domain.Photo {
	search = strings.TrimSpace(search)
	if search == "" {
		return photos
	}
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if strings.Contains(fold.String(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SortPhotos orders photos in place. Ids compare numerically and titles
// compare by the collation rules of lang; equal titles fall back to id so
// the order is total.
func SortPhotos(photos []domain.Photo, order domain.SortOrder, lang language.Tag) {
	var compare func(a, b domain.Photo) int

	if order.ByTitle() {
		// Collators keep internal buffers, so one per call
		col := collate.New(lang)
		compare = func(a, b domain.Photo) int {
			if c := col.CompareString(a.Title, b.Title); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		}
	} else {
		compare = func(a, b domain.Photo) int {
			return cmp.Compare(a.ID, b.ID)
		}
	}

	if order.Descending() {
		asc := compare
		compare = func(a, b domain.Photo) int { return asc(b, a) }
	}

	slices.SortStableFunc(photos, compare)
}
