package domain

import (
	"context"
)

// PhotoRepository provides paged access to the remote photo source
type PhotoRepository interface {
	// GetPhotos returns one page of photos, optionally narrowed to an album
	// (albumID 0 = all). Returns (items, totalReported, error); totalReported
	// is 0 when the source does not report a total.
	GetPhotos(ctx context.Context, page, limit, albumID int) ([]Photo, int, error)
}
