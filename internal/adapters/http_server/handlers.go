// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"gourmet_search/internal/app"
	"gourmet_search/internal/domain"
)

// Refresher reloads the catalog from its feed.
type Refresher interface {
	Refresh(ctx context.Context) (*app.Catalog, error)
}

type Handlers struct {
	Q       *app.QueryService
	Refresh Refresher // nil disables POST /v1/catalog/refresh
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/venues", h.searchVenues)
	s.mux.Get("/v1/suggestions/locations", h.suggestLocations)
	s.mux.Get("/v1/suggestions/genres", h.suggestGenres)
	s.mux.Get("/v1/catalog", h.catalogStats)
	if h.Refresh != nil {
		s.mux.Post("/v1/catalog/refresh", h.refreshCatalog)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeQueryErr maps service errors onto problems.
func writeQueryErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable", "catalog has not been loaded yet")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if etag != "" {
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// intParam reads an optional positive integer query parameter.
func intParam(r *http.Request, key string, max int) (int, bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || (max > 0 && n > max) {
		return 0, false
	}
	return n, true
}

func (h *Handlers) searchVenues(w http.ResponseWriter, r *http.Request) {
	page, ok := intParam(r, "page", 0)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid page", "page must be a positive integer")
		return
	}
	size, ok := intParam(r, "page_size", 100)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid page_size", "page_size must be an integer between 1 and 100")
		return
	}

	q := r.URL.Query()
	out, err := h.Q.Search(r.Context(), domain.SearchRequest{
		Location: q.Get("location"),
		Genre:    q.Get("genre"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	writeJSON(w, r, out)
}

type suggestFunc func(ctx context.Context, partial string, limit int) ([]string, error)

func (h *Handlers) suggest(w http.ResponseWriter, r *http.Request, fn suggestFunc) {
	limit, ok := intParam(r, "limit", 0)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
		return
	}
	out, err := fn(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	writeJSON(w, r, map[string][]string{"suggestions": out})
}

func (h *Handlers) suggestLocations(w http.ResponseWriter, r *http.Request) {
	h.suggest(w, r, h.Q.LocationSuggestions)
}

func (h *Handlers) suggestGenres(w http.ResponseWriter, r *http.Request) {
	h.suggest(w, r, h.Q.GenreSuggestions)
}

func (h *Handlers) catalogStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		writeQueryErr(w, err)
		return
	}
	writeJSON(w, r, st)
}

func (h *Handlers) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.Refresh.Refresh(r.Context())
	if err != nil {
		title := "Feed Unavailable"
		if errors.Is(err, domain.ErrEmptyFeed) {
			title = "Empty Feed"
		}
		// the previous catalog keeps serving
		writeProblem(w, http.StatusBadGateway, title, "catalog refresh failed: "+err.Error())
		return
	}
	writeJSON(w, r, c.Stats())
}
