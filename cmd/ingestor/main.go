package main

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"gourmet_search/internal/adapters/observability"
	"gourmet_search/internal/adapters/sheets"
	"gourmet_search/internal/app"
	"gourmet_search/internal/domain"
	"gourmet_search/internal/shared"
	mysqlrepo "gourmet_search/internal/storage/mysql"
)

// ingestor fetches every configured sheet, validates it into a catalog and
// records one run per sheet. Exit status 1 means at least one sheet failed.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("sheet_id", cfg.SheetID).
		Strs("sheets", cfg.FeedSheets).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	var runs domain.RunRepository
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("db ping ok")
		runs = mysqlrepo.New(db)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, name := range cfg.FeedSheets {
		client, err := feedFor(cfg, name)
		if err != nil {
			log.Fatal().Err(err).Str("sheet", name).Msg("failed to initialize feed client")
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(src domain.FeedSource) {
			defer wg.Done()
			defer sem.Release(int64(1))

			ing := app.NewIngestionService(src, app.NewStore(), runs, nil)
			c, err := ing.Validate(ctx)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("sheet", src.Name()).Err(err).Msg("ingest failed")
				return
			}
			log.Info().
				Str("sheet", src.Name()).
				Int("venues", len(c.Venues)).
				Int("rejected", c.Rejected).
				Int("locations", c.LocationCount()).
				Int("genres", c.GenreCount()).
				Msg("ingest ok")
		}(client)
	}

	wg.Wait()
	log.Info().Int32("failed", failed.Load()).Msg("ingestion completed")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func feedFor(cfg shared.Config, sheet string) (*sheets.Client, error) {
	if cfg.FeedURL != "" {
		return sheets.New(cfg.FeedURL, sheet, cfg.FeedRPS)
	}
	return sheets.NewForSheet(cfg.SheetID, sheet, cfg.FeedRPS)
}
