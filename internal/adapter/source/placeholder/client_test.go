package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/photodeck/internal/domain"
)

// photoServer serves total photos spread over albums of 50, honouring
// _page, _limit and albumId the way json-server does.
func photoServer(t *testing.T, total int, withCount bool) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/photos" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("_page"))
		limit, _ := strconv.Atoi(q.Get("_limit"))
		album, _ := strconv.Atoi(q.Get("albumId"))

		var all []PhotoDTO
		for id := 1; id <= total; id++ {
			a := (id-1)/50 + 1
			if album > 0 && a != album {
				continue
			}
			all = append(all, PhotoDTO{
				AlbumID:      a,
				ID:           id,
				Title:        fmt.Sprintf("photo %d", id),
				URL:          fmt.Sprintf("https://via.placeholder.com/600/%d", id),
				ThumbnailURL: fmt.Sprintf("https://via.placeholder.com/150/%d", id),
			})
		}
		start := (page - 1) * limit
		end := start + limit
		if start > len(all) {
			start = len(all)
		}
		if end > len(all) {
			end = len(all)
		}
		if withCount {
			w.Header().Set(totalCountHeader, strconv.Itoa(len(all)))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(all[start:end])
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGetPhotos(t *testing.T) {
	srv, _ := photoServer(t, 200, true)
	c := NewClient(srv.URL+"/", nil)

	photos, total, err := c.GetPhotos(context.Background(), 2, 50, 0)
	if err != nil {
		t.Fatalf("GetPhotos: %v", err)
	}
	if len(photos) != 50 {
		t.Fatalf("got %d photos, want 50", len(photos))
	}
	if photos[0].ID != 51 || photos[49].ID != 100 {
		t.Errorf("page 2 spans ids %d..%d, want 51..100", photos[0].ID, photos[49].ID)
	}
	if total != 200 {
		t.Errorf("total = %d, want 200", total)
	}
}

func TestGetPhotosAlbumFilter(t *testing.T) {
	srv, _ := photoServer(t, 200, true)
	c := NewClient(srv.URL, nil)

	photos, total, err := c.GetPhotos(context.Background(), 1, 50, 3)
	if err != nil {
		t.Fatalf("GetPhotos: %v", err)
	}
	for _, p := range photos {
		if p.AlbumID != 3 {
			t.Fatalf("photo %d has album %d, want 3", p.ID, p.AlbumID)
		}
	}
	if total != 50 {
		t.Errorf("total = %d, want 50", total)
	}
}

func TestGetPhotosWithoutTotalHeader(t *testing.T) {
	srv, _ := photoServer(t, 10, false)
	c := NewClient(srv.URL, nil)

	_, total, err := c.GetPhotos(context.Background(), 1, 50, 0)
	if err != nil {
		t.Fatalf("GetPhotos: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0 when header is absent", total)
	}
}

func TestGetPhotosSendsQuery(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q", ua)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, WithUserAgent("test-agent"))
	if _, _, err := c.GetPhotos(context.Background(), 0, 50, 7); err != nil {
		t.Fatalf("GetPhotos: %v", err)
	}
	if want := "_limit=50&_page=1&albumId=7"; got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestGetPhotosErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, _, err := NewClient(srv.URL, nil).GetPhotos(context.Background(), 1, 50, 0)
		var se *domain.StatusError
		if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected StatusError 503, got %v", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}))
		defer srv.Close()

		_, _, err := NewClient(srv.URL, nil).GetPhotos(context.Background(), 1, 50, 0)
		if err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("offline", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, _, err := NewClient(url, nil).GetPhotos(context.Background(), 1, 50, 0)
		if !errors.Is(err, domain.ErrSourceOffline) {
			t.Fatalf("expected ErrSourceOffline, got %v", err)
		}
	})
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv, hits := photoServer(t, 10, true)
	c := NewClient(srv.URL, nil, WithRateLimit(0.01))

	// First request consumes the burst.
	if _, _, err := c.GetPhotos(context.Background(), 1, 5, 0); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, _, err := c.GetPhotos(ctx, 2, 5, 0); err == nil {
		t.Fatal("expected limiter to give up on the short deadline")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestMapPhotos(t *testing.T) {
	got := MapPhotos([]PhotoDTO{
		{ID: 0, Title: "dropped"},
		{AlbumID: 1, ID: 2, Title: "  padded  ", URL: "u", ThumbnailURL: "t"},
	})
	want := []domain.Photo{{AlbumID: 1, ID: 2, Title: "padded", URL: "u", ThumbnailURL: "t"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapPhotos mismatch (-want +got):\n%s", diff)
	}
}
