package domain

import "time"

// CachedPage is a raw source page as stored in the local cache
type CachedPage struct {
	Photos    []Photo   `json:"photos"`
	Total     int       `json:"total"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Store handles the local response cache (BoltDB + memory).
// Page keys encode ancestry (album:X:page:N:limit:L) so an album can be
// invalidated by prefix.
type Store interface {
	// === Raw pages ===
	GetPage(albumID, page, limit int) (CachedPage, bool)
	SavePage(albumID, page, limit int, p CachedPage) error

	// === Album ids ===
	GetAlbumIDs() ([]int, bool)
	SaveAlbumIDs(ids []int) error

	// === Invalidation ===
	InvalidateAlbum(albumID int)
	InvalidatePages()
	InvalidateAll()

	Close() error
}
