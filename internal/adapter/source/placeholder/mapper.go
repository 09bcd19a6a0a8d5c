package placeholder

import (
	"strings"

	"github.com/mmcdole/photodeck/internal/domain"
)

// MapPhotos converts source records to domain photos, dropping records
// without a usable id
func MapPhotos(dtos []PhotoDTO) []domain.Photo {
	photos := make([]domain.Photo, 0, len(dtos))
	for _, d := range dtos {
		if d.ID <= 0 {
			continue
		}
		photos = append(photos, MapPhoto(d))
	}
	return photos
}

// MapPhoto converts a single record
func MapPhoto(d PhotoDTO) domain.Photo {
	return domain.Photo{
		AlbumID:      d.AlbumID,
		ID:           d.ID,
		Title:        strings.TrimSpace(d.Title),
		URL:          d.URL,
		ThumbnailURL: d.ThumbnailURL,
	}
}
