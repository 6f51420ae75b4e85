package domain

import "context"

type FeedSource interface {
	// Fetch returns the raw CSV payload of the feed.
	Fetch(ctx context.Context) (string, error)
	// Name identifies the feed in logs and run records.
	Name() string
}

type RunRepository interface {
	RecordRun(ctx context.Context, r IngestRun) error
	LatestRuns(ctx context.Context, source string, limit int) ([]IngestRun, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) error
}

// Read models & queries
type SearchRequest struct {
	Location string
	Genre    string
	Page     int // 0 means a new search, served from page 1
	PageSize int
}

type SearchPage struct {
	Items      []Venue `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Pages      []int   `json:"pages"`
	Version    uint64  `json:"version"`
}

type CatalogStats struct {
	Version  uint64 `json:"version"`
	Venues   int    `json:"venues"`
	Rejected int    `json:"rejected"`
	LoadedAt string `json:"loaded_at"`
}
