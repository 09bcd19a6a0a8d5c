package domain

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
)

// Photo is a single record from the photo source. Identity is ID.
type Photo struct {
	AlbumID      int    `json:"albumId"`
	ID           int    `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// DisplayTitle returns the title, or a placeholder for untitled records
func (p Photo) DisplayTitle() string {
	if p.Title == "" {
		return fmt.Sprintf("Photo #%d", p.ID)
	}
	return p.Title
}

// AlbumLabel returns a short label like "Album 3"
func (p Photo) AlbumLabel() string {
	return "Album " + strconv.Itoa(p.AlbumID)
}

// ThumbnailRef returns host + path of the thumbnail, which is what the
// card view shows in place of the image.
func (p Photo) ThumbnailRef() string {
	return shortURL(p.ThumbnailURL)
}

// shortURL strips the scheme so URLs fit in narrow columns
func shortURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host + path.Clean("/"+u.Path)
}

// Page is the result of one fetch. Never mutated after creation.
type Page struct {
	Items    []Photo
	Number   int  // 1-based page number this result answers
	HasMore  bool // more pages exist for the same filters
	NextPage int  // 0 when HasMore is false
	Total    int  // total photos known to the source
}

// PageQuery is the logical input of a page fetch
type PageQuery struct {
	Page    int
	Filters PhotoFilters
}
