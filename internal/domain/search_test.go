package domain

import (
	"errors"
	"net/http"
	"testing"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortIDAsc, false},
		{"id-asc", SortIDAsc, false},
		{"ID-DESC", SortIDDesc, false},
		{" title-asc ", SortTitleAsc, false},
		{"title-desc", SortTitleDesc, false},
		{"date-asc", SortIDAsc, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSortOrderRoundTripAndCycle(t *testing.T) {
	for _, s := range AllSortOrders {
		got, err := ParseSortOrder(s.String())
		if err != nil || got != s {
			t.Errorf("round trip %v: got %v, err %v", s, got, err)
		}
	}
	s := SortIDAsc
	for range AllSortOrders {
		s = s.Next()
	}
	if s != SortIDAsc {
		t.Errorf("Next() should cycle back to id-asc, got %v", s)
	}
}

func TestPhotoFiltersEquality(t *testing.T) {
	a := PhotoFilters{Search: "cat", AlbumID: "2", SortBy: SortTitleAsc}
	b := PhotoFilters{Search: "cat", AlbumID: "2", SortBy: SortTitleAsc}
	if a != b {
		t.Error("identical filters should compare equal")
	}
	b.SortBy = SortTitleDesc
	if a == b {
		t.Error("filters differing in sort should not compare equal")
	}
	if !(PhotoFilters{}).IsZero() {
		t.Error("empty filters should be zero")
	}
	if got := (PhotoFilters{}).Key(); got != "album=all|sort=id-asc|q=" {
		t.Errorf("Key() = %q", got)
	}
}

func TestAlbumNumber(t *testing.T) {
	n, ok, err := PhotoFilters{}.AlbumNumber()
	if ok || err != nil || n != 0 {
		t.Errorf("empty album: n=%d ok=%v err=%v", n, ok, err)
	}

	n, ok, err = PhotoFilters{AlbumID: "7"}.AlbumNumber()
	if !ok || err != nil || n != 7 {
		t.Errorf("album 7: n=%d ok=%v err=%v", n, ok, err)
	}

	for _, bad := range []string{"x", "0", "-3"} {
		_, _, err = PhotoFilters{AlbumID: bad}.AlbumNumber()
		if !errors.Is(err, ErrInvalidAlbum) {
			t.Errorf("album %q: expected ErrInvalidAlbum, got %v", bad, err)
		}
	}
}

func TestStatusErrorIs(t *testing.T) {
	var err error = &StatusError{Code: http.StatusNotFound, Path: "/photos"}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
	err = &StatusError{Code: http.StatusInternalServerError, Path: "/photos"}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
}

func TestPhotoHelpers(t *testing.T) {
	p := Photo{ID: 4, AlbumID: 2, ThumbnailURL: "https://via.placeholder.com/150/d32776"}
	if got := p.DisplayTitle(); got != "Photo #4" {
		t.Errorf("DisplayTitle() = %q", got)
	}
	if got := p.AlbumLabel(); got != "Album 2" {
		t.Errorf("AlbumLabel() = %q", got)
	}
	if got := p.ThumbnailRef(); got != "via.placeholder.com/150/d32776" {
		t.Errorf("ThumbnailRef() = %q", got)
	}
}
