package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain operations
var (
	// ErrSourceOffline indicates the photo source is unreachable
	ErrSourceOffline = errors.New("photo source is unreachable")

	// ErrInvalidAlbum indicates an album filter that is not a positive integer
	ErrInvalidAlbum = errors.New("invalid album id")

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrEmptySelection indicates an export was requested with nothing selected
	ErrEmptySelection = errors.New("no photos selected")
)

// StatusError reports a non-200 response from the photo source
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s) for %s", e.Code, http.StatusText(e.Code), e.Path)
}

// Is lets errors.Is(err, ErrNotFound) match a 404
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}
