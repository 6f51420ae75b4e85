package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SheetID         string
	SheetName       string
	FeedURL         string
	FeedSheets      []string
	FeedRPS         float64
	RefreshInterval time.Duration
	CacheTTL        time.Duration
	SearchDelay     time.Duration
	PageSize        int
	PageWindow      int
	SuggestLimit    int
	Workers         int
}

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the environment win over .env.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be parsed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		MySQLDSN:        env("MYSQL_DSN", ""),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		SheetID:         env("SHEET_ID", ""),
		SheetName:       env("SHEET_NAME", "シート1"),
		FeedURL:         env("FEED_URL", ""),
		FeedSheets:      splitList(env("FEED_SHEETS", "")),
		FeedRPS:         atof("FEED_RPS", 1),
		RefreshInterval: time.Duration(atoi("REFRESH_INTERVAL_SECONDS", 0)) * time.Second,
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		SearchDelay:     time.Duration(atoi("SEARCH_DELAY_MS", 0)) * time.Millisecond,
		PageSize:        atoi("PAGE_SIZE", 6),
		PageWindow:      atoi("PAGE_WINDOW", 7),
		SuggestLimit:    atoi("SUGGEST_LIMIT", 5),
		Workers:         atoi("INGEST_WORKERS", 4),
	}
	if len(c.FeedSheets) == 0 {
		c.FeedSheets = []string{c.SheetName}
	}
	if c.SheetID == "" && c.FeedURL == "" {
		log.Warn().Msg("neither SHEET_ID nor FEED_URL is set")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
