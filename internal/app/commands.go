package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gourmet_search/internal/adapters/observability"
	"gourmet_search/internal/domain"
)

type IngestionService struct {
	feed  domain.FeedSource
	store *Store
	runs  domain.RunRepository
	cache domain.Cache
}

// NewIngestionService wires a feed to a store. runs and cache may be nil.
func NewIngestionService(f domain.FeedSource, s *Store, runs domain.RunRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{feed: f, store: s, runs: runs, cache: cache}
}

// Refresh fetches the feed and publishes a new catalog. On any failure the
// current catalog stays in place and the error is returned.
func (s *IngestionService) Refresh(ctx context.Context) (*Catalog, error) {
	run := domain.IngestRun{
		ID:        uuid.NewString(),
		Source:    s.feed.Name(),
		StartedAt: time.Now().UTC(),
	}

	c, err := s.load(ctx)
	if err != nil {
		s.finish(ctx, &run, nil, err)
		if errors.Is(err, domain.ErrEmptyFeed) {
			log.Warn().Str("source", run.Source).Msg("feed has no rows; keeping previous catalog")
		} else {
			log.Warn().Err(err).Str("source", run.Source).Msg("ingest failed; keeping previous catalog")
		}
		return nil, err
	}

	version := s.store.Publish(c)
	observability.ObserveCatalog(len(c.Venues), c.Rejected)

	// Cached rankings are keyed by version; drop the stale ones.
	if s.cache != nil {
		if err := s.cache.DelPrefix(ctx, searchKeyPrefix); err != nil {
			log.Warn().Err(err).Msg("search cache invalidation failed")
		}
	}

	s.finish(ctx, &run, c, nil)
	log.Info().
		Str("source", run.Source).
		Uint64("version", version).
		Int("venues", len(c.Venues)).
		Int("rejected", c.Rejected).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("catalog refreshed")
	return c, nil
}

// load runs fetch and build without publishing anything.
func (s *IngestionService) load(ctx context.Context) (*Catalog, error) {
	raw, err := s.feed.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c, err := BuildCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("build catalog from %s: %w", s.feed.Name(), err)
	}
	return c, nil
}

// Validate fetches and builds the feed, records the run, and leaves the store alone.
func (s *IngestionService) Validate(ctx context.Context) (*Catalog, error) {
	run := domain.IngestRun{
		ID:        uuid.NewString(),
		Source:    s.feed.Name(),
		StartedAt: time.Now().UTC(),
	}
	c, err := s.load(ctx)
	s.finish(ctx, &run, c, err)
	return c, err
}

func (s *IngestionService) finish(ctx context.Context, run *domain.IngestRun, c *Catalog, err error) {
	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = domain.RunFailed
		msg := err.Error()
		run.Error = &msg
	} else {
		run.Status = domain.RunOK
		run.Venues = len(c.Venues)
		run.Rejected = c.Rejected
	}
	observability.ObserveIngest(run.Status)

	if s.runs == nil {
		return
	}
	if rerr := s.runs.RecordRun(ctx, *run); rerr != nil {
		log.Error().Err(rerr).Str("run", run.ID).Msg("record ingest run failed")
	}
}

// RunPeriodic refreshes every interval until ctx is done.
func (s *IngestionService) RunPeriodic(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = s.Refresh(ctx)
		}
	}
}
