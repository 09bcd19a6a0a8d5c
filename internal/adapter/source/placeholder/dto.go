package placeholder

// PhotoDTO is a photo record as served by GET /photos
type PhotoDTO struct {
	AlbumID      int    `json:"albumId"`
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Header carrying the unpaged collection size (json-server convention)
const totalCountHeader = "X-Total-Count"
