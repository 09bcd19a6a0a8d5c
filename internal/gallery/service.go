package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mmcdole/photodeck/internal/domain"
	"golang.org/x/text/language"
)

const (
	// PageSize is the fixed number of photos requested per page
	PageSize = 50

	// DefaultKnownTotal is assumed when the source reports no total
	DefaultKnownTotal = 5000

	// albumProbeLimit is how many photos are sampled to derive album ids
	albumProbeLimit = 100
)

// Options tunes a Service
type Options struct {
	KnownTotal int           // fallback total; 0 = DefaultKnownTotal
	CacheTTL   time.Duration // max age of a cached page; 0 disables page reuse
	Collation  string        // BCP 47 tag used for title ordering
}

// Service turns logical page queries into source calls and applies the
// filtering and ordering the source cannot do.
type Service struct {
	repo       domain.PhotoRepository
	store      domain.Store // optional
	logger     *slog.Logger
	knownTotal int
	ttl        time.Duration
	lang       language.Tag
	now        func() time.Time
}

// NewService creates a new gallery service. store may be nil.
func NewService(repo domain.PhotoRepository, store domain.Store, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	total := opts.KnownTotal
	if total <= 0 {
		total = DefaultKnownTotal
	}
	lang, err := language.Parse(opts.Collation)
	if err != nil {
		if opts.Collation != "" {
			logger.Warn("unknown collation, using en", "collation", opts.Collation, "error", err)
		}
		lang = language.English
	}
	return &Service{
		repo:       repo,
		store:      store,
		logger:     logger,
		knownTotal: total,
		ttl:        opts.CacheTTL,
		lang:       lang,
		now:        time.Now,
	}
}

// FetchPhotos fetches one page for q and returns it filtered by title,
// sorted per q.Filters.SortBy (within the page only) and flagged with
// whether more pages exist.
func (s *Service) FetchPhotos(ctx context.Context, q domain.PageQuery) (domain.Page, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	albumID, _, err := q.Filters.AlbumNumber()
	if err != nil {
		return domain.Page{}, err
	}

	raw, reported, err := s.fetchRaw(ctx, page, albumID)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching page %d: %w", page, err)
	}

	items := FilterByTitle(raw, q.Filters.Search)
	SortPhotos(items, q.Filters.SortBy, s.lang)

	total := s.knownTotal
	if reported > 0 {
		total = reported
	}

	hasMore := len(items) == PageSize && page*PageSize < total
	next := 0
	if hasMore {
		next = page + 1
	}

	s.logger.Debug("fetched page",
		"page", page,
		"filters", q.Filters.Key(),
		"raw", len(raw),
		"count", len(items),
		"hasMore", hasMore,
	)

	return domain.Page{
		Items:    items,
		Number:   page,
		HasMore:  hasMore,
		NextPage: next,
		Total:    total,
	}, nil
}

// fetchRaw returns the unfiltered source page, from cache when fresh
func (s *Service) fetchRaw(ctx context.Context, page, albumID int) ([]domain.Photo, int, error) {
	if s.store != nil && s.ttl > 0 {
		if cached, ok := s.store.GetPage(albumID, page, PageSize); ok {
			if age := s.now().Sub(cached.FetchedAt); age >= 0 && age < s.ttl {
				s.logger.Debug("cache fresh", "page", page, "album", albumID, "age", age)
				return slices.Clone(cached.Photos), cached.Total, nil
			}
		}
	}

	photos, total, err := s.repo.GetPhotos(ctx, page, PageSize, albumID)
	if err != nil {
		s.logger.Error("failed to fetch photos", "error", err, "page", page, "album", albumID)
		return nil, 0, err
	}

	if s.store != nil {
		entry := domain.CachedPage{Photos: photos, Total: total, FetchedAt: s.now()}
		if err := s.store.SavePage(albumID, page, PageSize, entry); err != nil {
			s.logger.Error("failed to save page", "error", err, "page", page, "album", albumID)
		}
	}

	return slices.Clone(photos), total, nil
}

// AlbumIDs returns the distinct album ids seen in the first probe page,
// ascending. Cached indefinitely once fetched.
func (s *Service) AlbumIDs(ctx context.Context) ([]int, error) {
	if s.store != nil {
		if ids, ok := s.store.GetAlbumIDs(); ok && len(ids) > 0 {
			s.logger.Debug("album ids from cache", "count", len(ids))
			return ids, nil
		}
	}
	return s.RefreshAlbums(ctx)
}

// RefreshAlbums re-derives album ids from the source, bypassing the cache
func (s *Service) RefreshAlbums(ctx context.Context) ([]int, error) {
	photos, _, err := s.repo.GetPhotos(ctx, 1, albumProbeLimit, 0)
	if err != nil {
		s.logger.Error("failed to fetch album ids", "error", err)
		return nil, fmt.Errorf("fetching album ids: %w", err)
	}

	ids := DistinctAlbumIDs(photos)
	if s.store != nil {
		if err := s.store.SaveAlbumIDs(ids); err != nil {
			s.logger.Error("failed to save album ids", "error", err)
		}
	}
	s.logger.Debug("fetched album ids", "count", len(ids))
	return ids, nil
}

// Invalidate drops cached pages so the next fetch hits the source
func (s *Service) Invalidate() {
	if s.store != nil {
		s.store.InvalidatePages()
	}
}

// DistinctAlbumIDs returns the unique album ids of photos, ascending
func DistinctAlbumIDs(photos []domain.Photo) []int {
	seen := make(map[int]struct{}, len(photos))
	ids := make([]int, 0)
	for _, p := range photos {
		if _, ok := seen[p.AlbumID]; ok {
			continue
		}
		seen[p.AlbumID] = struct{}{}
		ids = append(ids, p.AlbumID)
	}
	slices.Sort(ids)
	return ids
}
