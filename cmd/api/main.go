package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "gourmet_search/internal/adapters/http_server"
	"gourmet_search/internal/adapters/observability"
	redisad "gourmet_search/internal/adapters/redis"
	"gourmet_search/internal/adapters/sheets"
	"gourmet_search/internal/app"
	"gourmet_search/internal/domain"
	"gourmet_search/internal/shared"
	mysqlrepo "gourmet_search/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// feed
	var feed *sheets.Client
	var err error
	if cfg.FeedURL != "" {
		feed, err = sheets.New(cfg.FeedURL, cfg.SheetName, cfg.FeedRPS)
	} else {
		feed, err = sheets.NewForSheet(cfg.SheetID, cfg.SheetName, cfg.FeedRPS)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize feed client")
	}

	// optional deps
	var runs domain.RunRepository
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("database connection ok")
		runs = mysqlrepo.New(db)
	}
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "gourmet")
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; search cache disabled")
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	store := app.NewStore()
	ing := app.NewIngestionService(feed, store, runs, cache)
	q := app.NewQueryService(store, cache, app.QueryOptions{
		PageSize:    cfg.PageSize,
		PageWindow:  cfg.PageWindow,
		SuggestMax:  cfg.SuggestLimit,
		CacheTTL:    cfg.CacheTTL,
		SearchDelay: cfg.SearchDelay,
	})

	// First load; the API still starts on failure and answers 503 until a refresh succeeds.
	if _, err := ing.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("initial catalog load failed")
	}
	go ing.RunPeriodic(ctx, cfg.RefreshInterval)

	// http
	srv := server.New(15*time.Second + cfg.SearchDelay)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Refresh: ing})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
