package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"gourmet_search/internal/adapters/observability"
	"gourmet_search/internal/domain"
)

type QueryOptions struct {
	PageSize    int
	PageWindow  int
	SuggestMax  int
	CacheTTL    time.Duration
	SearchDelay time.Duration // cosmetic pause shown as "searching" by clients
}

type QueryService struct {
	store *Store
	cache domain.Cache
	opts  QueryOptions
}

func NewQueryService(s *Store, c domain.Cache, opts QueryOptions) *QueryService {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageWindow <= 0 {
		opts.PageWindow = DefaultPageWindow
	}
	if opts.SuggestMax <= 0 {
		opts.SuggestMax = DefaultSuggestLimit
	}
	return &QueryService{store: s, cache: c, opts: opts}
}

func (s *QueryService) current() (*Catalog, error) {
	c := s.store.Load()
	if c == nil {
		return nil, fmt.Errorf("catalog not loaded: %w", domain.ErrNotFound)
	}
	return c, nil
}

// searchKey quotes the raw queries: matching is done on the untrimmed needle,
// and quoting keeps separators inside a query from colliding.
func searchKey(version uint64, location, genre string) string {
	return fmt.Sprintf("%sv%d:%s:%s", searchKeyPrefix, version, strconv.Quote(location), strconv.Quote(genre))
}

const searchKeyPrefix = "search:"

// Search ranks the current catalog for req and returns the requested page.
// Page 0 is a fresh search and is served as page 1.
func (s *QueryService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchPage, error) {
	if err := sleepCtx(ctx, s.opts.SearchDelay); err != nil {
		return domain.SearchPage{}, err
	}
	c, err := s.current()
	if err != nil {
		return domain.SearchPage{}, err
	}

	ranked := s.ranked(ctx, c, req.Location, req.Genre)

	size := req.PageSize
	if size <= 0 {
		size = s.opts.PageSize
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	items, totalPages := Paginate(ranked, size, page)
	return domain.SearchPage{
		Items:      items,
		Total:      len(ranked),
		Page:       page,
		TotalPages: totalPages,
		Pages:      VisiblePageNumbers(totalPages, page, s.opts.PageWindow),
		Version:    c.Version,
	}, nil
}

func (s *QueryService) ranked(ctx context.Context, c *Catalog, location, genre string) []domain.Venue {
	key := searchKey(c.Version, location, genre)
	if s.cache != nil {
		var hit []domain.Venue
		if ok, err := s.cache.Get(ctx, key, &hit); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache get failed")
		} else if ok {
			return hit
		}
	}

	start := time.Now()
	out := Search(c.Venues, location, genre)
	observability.ObserveSearch(time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, int(s.opts.CacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache set failed")
		}
	}
	return out
}

func (s *QueryService) LocationSuggestions(ctx context.Context, partial string, limit int) ([]string, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	return c.locations.Suggest(partial, s.limit(limit)), nil
}

func (s *QueryService) GenreSuggestions(ctx context.Context, partial string, limit int) ([]string, error) {
	c, err := s.current()
	if err != nil {
		return nil, err
	}
	return c.genres.Suggest(partial, s.limit(limit)), nil
}

func (s *QueryService) Stats(ctx context.Context) (domain.CatalogStats, error) {
	c, err := s.current()
	if err != nil {
		return domain.CatalogStats{}, err
	}
	return c.Stats(), nil
}

func (s *QueryService) limit(n int) int {
	if n <= 0 || n > s.opts.SuggestMax {
		return s.opts.SuggestMax
	}
	return n
}

// sleepCtx waits for d or returns ctx.Err() if ctx ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
