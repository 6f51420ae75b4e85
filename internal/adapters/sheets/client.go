// internal/adapters/sheets/client.go
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"gourmet_search/internal/adapters/observability"
	"gourmet_search/internal/domain"
)

const maxFeedBytes = 32 << 20

// Client fetches one sheet as CSV through the gviz export endpoint.
type Client struct {
	url  string
	name string
	hc   *http.Client
	rl   *rate.Limiter
}

// ExportURL builds the CSV export URL for a sheet tab.
func ExportURL(sheetID, sheetName string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		url.PathEscape(sheetID), url.QueryEscape(sheetName))
}

// New returns a client for feedURL. rps bounds how often the feed may be hit.
func New(feedURL, name string, rps float64) (*Client, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("feed URL is required")
	}
	if rps <= 0 {
		rps = 1
	}
	if name == "" {
		name = feedURL
	}
	return &Client{
		url:  feedURL,
		name: name,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// NewForSheet is New with the export URL of sheetID/sheetName.
func NewForSheet(sheetID, sheetName string, rps float64) (*Client, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("sheet ID is required")
	}
	return New(ExportURL(sheetID, sheetName), sheetName, rps)
}

func (c *Client) Name() string { return c.name }

// Fetch performs one GET and returns the body. There is no retry: a failed
// fetch is reported and the caller keeps whatever catalog it had.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("User-Agent", "gourmet-search/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Warn().Err(err).Str("feed", c.name).Str("err_type", observability.LabelErr(err)).Msg("feed request failed")
		return "", fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("sheets", c.name, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: HTTP %d: %s", domain.ErrFeedUnavailable, resp.StatusCode,
			strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode))))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrFeedUnavailable, err)
	}
	return string(b), nil
}
