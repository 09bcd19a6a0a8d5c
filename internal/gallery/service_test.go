package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mmcdole/photodeck/internal/adapter/source/placeholder"
	"github.com/mmcdole/photodeck/internal/domain"
	"github.com/mmcdole/photodeck/internal/store"
	"golang.org/x/text/language"
)

// fakeRepo serves a fixed photo set and records calls
type fakeRepo struct {
	photos   []domain.Photo
	reported int // value returned as the source total
	err      error
	calls    int
}

func (f *fakeRepo) GetPhotos(_ context.Context, page, limit, albumID int) ([]domain.Photo, int, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	var matched []domain.Photo
	for _, p := range f.photos {
		if albumID > 0 && p.AlbumID != albumID {
			continue
		}
		matched = append(matched, p)
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+limit, len(matched))
	return append([]domain.Photo(nil), matched[start:end]...), f.reported, nil
}

func makePhotos(n int) []domain.Photo {
	photos := make([]domain.Photo, n)
	for i := range photos {
		id := i + 1
		photos[i] = domain.Photo{
			ID:      id,
			AlbumID: (id-1)/50 + 1,
			Title:   fmt.Sprintf("title %04d", id),
		}
	}
	return photos
}

func ids(photos []domain.Photo) []int {
	out := make([]int, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

func TestFetchPhotosHasMore(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		reported  int
		known     int
		page      int
		filters   domain.PhotoFilters
		wantCount int
		wantMore  bool
		wantNext  int
	}{
		{"first of many", 5000, 0, 5000, 1, domain.PhotoFilters{}, 50, true, 2},
		{"last full page", 5000, 0, 5000, 100, domain.PhotoFilters{}, 50, false, 0},
		{"short page", 120, 0, 5000, 3, domain.PhotoFilters{}, 20, false, 0},
		{"known total caps paging", 5000, 0, 100, 2, domain.PhotoFilters{}, 50, false, 0},
		{"reported total wins", 5000, 150, 5000, 3, domain.PhotoFilters{}, 50, false, 0},
		{"album of exactly one page", 5000, 50, 5000, 1, domain.PhotoFilters{AlbumID: "4"}, 50, false, 0},
		{"search thins page", 5000, 0, 5000, 1, domain.PhotoFilters{Search: "title 000"}, 9, false, 0},
		{"page clamped to 1", 5000, 0, 5000, 0, domain.PhotoFilters{}, 50, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{photos: makePhotos(tt.total), reported: tt.reported}
			svc := NewService(repo, nil, nil, Options{KnownTotal: tt.known})

			page, err := svc.FetchPhotos(context.Background(), domain.PageQuery{Page: tt.page, Filters: tt.filters})
			if err != nil {
				t.Fatalf("FetchPhotos: %v", err)
			}
			if len(page.Items) > PageSize {
				t.Fatalf("page has %d items, cap is %d", len(page.Items), PageSize)
			}
			if len(page.Items) != tt.wantCount {
				t.Errorf("count = %d, want %d", len(page.Items), tt.wantCount)
			}
			if page.HasMore != tt.wantMore {
				t.Errorf("HasMore = %v, want %v", page.HasMore, tt.wantMore)
			}
			if page.NextPage != tt.wantNext {
				t.Errorf("NextPage = %d, want %d", page.NextPage, tt.wantNext)
			}
		})
	}
}

func TestFetchPhotosAllPagesRespectCap(t *testing.T) {
	repo := &fakeRepo{photos: makePhotos(5000)}
	svc := NewService(repo, nil, nil, Options{})

	for p := 1; p <= 101; p++ {
		page, err := svc.FetchPhotos(context.Background(), domain.PageQuery{Page: p})
		if err != nil {
			t.Fatalf("page %d: %v", p, err)
		}
		if len(page.Items) > PageSize {
			t.Fatalf("page %d has %d items", p, len(page.Items))
		}
		if p*PageSize >= 5000 && page.HasMore {
			t.Fatalf("page %d: HasMore must be false once page*50 >= total", p)
		}
	}
}

func TestFetchPhotosSearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo := &fakeRepo{photos: []domain.Photo{
		{ID: 1, Title: "accusamus beatae"},
		{ID: 2, Title: "Reprehenderit EST"},
		{ID: 3, Title: "officia porro"},
		{ID: 4, Title: "culpa odio esse"},
	}}
	svc := NewService(repo, nil, nil, Options{})

	page, err := svc.FetchPhotos(context.Background(), domain.PageQuery{
		Page:    1,
		Filters: domain.PhotoFilters{Search: "Es"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 4}, ids(page.Items)); diff != "" {
		t.Errorf("search result mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPhotosSortOrders(t *testing.T) {
	photos := []domain.Photo{
		{ID: 2, Title: "B"},
		{ID: 1, Title: "A"},
		{ID: 3, Title: "C"},
	}
	tests := []struct {
		order  domain.SortOrder
		titles []string
	}{
		{domain.SortIDAsc, []string{"A", "B", "C"}},
		{domain.SortIDDesc, []string{"C", "B", "A"}},
		{domain.SortTitleAsc, []string{"A", "B", "C"}},
		{domain.SortTitleDesc, []string{"C", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			repo := &fakeRepo{photos: photos}
			svc := NewService(repo, nil, nil, Options{})
			page, err := svc.FetchPhotos(context.Background(), domain.PageQuery{
				Page:    1,
				Filters: domain.PhotoFilters{SortBy: tt.order},
			})
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, p := range page.Items {
				got = append(got, p.Title)
			}
			if diff := cmp.Diff(tt.titles, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortPhotosTitleTiesBreakByID(t *testing.T) {
	photos := []domain.Photo{
		{ID: 9, Title: "same"},
		{ID: 3, Title: "same"},
		{ID: 5, Title: "other"},
	}
	SortPhotos(photos, domain.SortTitleAsc, language.English)
	if diff := cmp.Diff([]int{5, 3, 9}, ids(photos)); diff != "" {
		t.Errorf("asc mismatch (-want +got):\n%s", diff)
	}
	SortPhotos(photos, domain.SortTitleDesc, language.English)
	if diff := cmp.Diff([]int{9, 3, 5}, ids(photos)); diff != "" {
		t.Errorf("desc mismatch (-want +got):\n%s", diff)
	}
}

func TestSortPhotosCollation(t *testing.T) {
	photos := []domain.Photo{
		{ID: 1, Title: "zebra"},
		{ID: 2, Title: "Éclair"},
		{ID: 3, Title: "apple"},
	}
	SortPhotos(photos, domain.SortTitleAsc, language.English)
	// Byte order would put "zebra" before "Éclair"; collation does not.
	if diff := cmp.Diff([]int{3, 2, 1}, ids(photos)); diff != "" {
		t.Errorf("collated order mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchPhotosSortIsPageLocal(t *testing.T) {
	repo := &fakeRepo{photos: makePhotos(100)}
	svc := NewService(repo, nil, nil, Options{})
	f := domain.PhotoFilters{SortBy: domain.SortIDDesc}

	p1, _ := svc.FetchPhotos(context.Background(), domain.PageQuery{Page: 1, Filters: f})
	p2, _ := svc.FetchPhotos(context.Background(), domain.PageQuery{Page: 2, Filters: f})

	if p1.Items[0].ID != 50 || p2.Items[0].ID != 100 {
		t.Errorf("each page should be ordered on its own: got first ids %d and %d",
			p1.Items[0].ID, p2.Items[0].ID)
	}
}

func TestFetchPhotosErrors(t *testing.T) {
	t.Run("transport error propagates", func(t *testing.T) {
		repo := &fakeRepo{err: domain.ErrSourceOffline}
		svc := NewService(repo, nil, nil, Options{})
		_, err := svc.FetchPhotos(context.Background(), domain.PageQuery{Page: 1})
		if !errors.Is(err, domain.ErrSourceOffline) {
			t.Errorf("got %v, want ErrSourceOffline", err)
		}
		if repo.calls != 1 {
			t.Errorf("calls = %d, want a single attempt", repo.calls)
		}
	})

	t.Run("invalid album", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, nil, nil, Options{})
		_, err := svc.FetchPhotos(context.Background(), domain.PageQuery{
			Page:    1,
			Filters: domain.PhotoFilters{AlbumID: "abc"},
		})
		if !errors.Is(err, domain.ErrInvalidAlbum) {
			t.Errorf("got %v, want ErrInvalidAlbum", err)
		}
		if repo.calls != 0 {
			t.Error("invalid album should not reach the source")
		}
	})
}

func TestFetchPhotosUsesFreshCache(t *testing.T) {
	st, err := store.NewPhotoStore("", "")
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeRepo{photos: makePhotos(200)}
	svc := NewService(repo, st, nil, Options{CacheTTL: 5 * time.Minute})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	q := domain.PageQuery{Page: 1}
	if _, err := svc.FetchPhotos(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	// Different search and sort reuse the same raw page
	q.Filters = domain.PhotoFilters{Search: "title", SortBy: domain.SortIDDesc}
	page, err := svc.FetchPhotos(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if repo.calls != 1 {
		t.Errorf("calls = %d, want 1 (second served from cache)", repo.calls)
	}
	if page.Items[0].ID != 50 {
		t.Errorf("cached page should still be sorted, first id = %d", page.Items[0].ID)
	}

	// Past the TTL the source is hit again
	now = now.Add(6 * time.Minute)
	if _, err := svc.FetchPhotos(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if repo.calls != 2 {
		t.Errorf("calls = %d, want 2 after expiry", repo.calls)
	}

	svc.Invalidate()
	if _, err := svc.FetchPhotos(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if repo.calls != 3 {
		t.Errorf("calls = %d, want 3 after Invalidate", repo.calls)
	}
}

func TestAlbumIDs(t *testing.T) {
	st, _ := store.NewPhotoStore("", "")
	repo := &fakeRepo{photos: makePhotos(5000)}
	svc := NewService(repo, st, nil, Options{})

	got, err := svc.AlbumIDs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("album ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.AlbumIDs(context.Background()); err != nil {
		t.Fatal(err)
	}
	if repo.calls != 1 {
		t.Errorf("calls = %d, want 1 (ids cached)", repo.calls)
	}

	if _, err := svc.RefreshAlbums(context.Background()); err != nil {
		t.Fatal(err)
	}
	if repo.calls != 2 {
		t.Errorf("calls = %d, want 2 after refresh", repo.calls)
	}
}

func TestDistinctAlbumIDs(t *testing.T) {
	got := DistinctAlbumIDs([]domain.Photo{{AlbumID: 3}, {AlbumID: 1}, {AlbumID: 3}, {AlbumID: 2}})
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := DistinctAlbumIDs(nil); len(got) != 0 {
		t.Errorf("nil input gave %v", got)
	}
}

// TestFetchPhotosEndToEnd drives the real HTTP client against a fake
// JSONPlaceholder with 5000 photos.
func TestFetchPhotosEndToEnd(t *testing.T) {
	all := makePhotos(5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("_page"))
		limit, _ := strconv.Atoi(q.Get("_limit"))
		start := (page - 1) * limit
		end := min(start+limit, len(all))
		w.Header().Set("X-Total-Count", strconv.Itoa(len(all)))
		_ = json.NewEncoder(w).Encode(all[start:end])
	}))
	defer srv.Close()

	client := placeholder.NewClient(srv.URL, nil)
	svc := NewService(client, nil, nil, Options{KnownTotal: 5000})

	page, err := svc.FetchPhotos(context.Background(), domain.PageQuery{
		Page:    1,
		Filters: domain.PhotoFilters{Search: "", AlbumID: "", SortBy: domain.SortIDAsc},
	})
	if err != nil {
		t.Fatalf("FetchPhotos: %v", err)
	}
	if len(page.Items) != 50 {
		t.Fatalf("got %d items, want 50", len(page.Items))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].ID >= page.Items[i].ID {
			t.Fatalf("ids not ascending at %d: %d then %d", i, page.Items[i-1].ID, page.Items[i].ID)
		}
	}
	if !page.HasMore || page.NextPage != 2 {
		t.Errorf("HasMore=%v NextPage=%d, want true/2", page.HasMore, page.NextPage)
	}
}
