package app

import (
	"strings"
	"sync/atomic"
	"time"

	"gourmet_search/internal/domain"
)

// Catalog is one ingestion cycle's worth of venues. It is never mutated after
// it has been published to a Store.
type Catalog struct {
	Venues   []domain.Venue
	Version  uint64
	LoadedAt time.Time
	Rejected int

	locations *SuggestionIndex
	genres    *SuggestionIndex
}

// NewCatalog wraps venues and derives the suggestion indexes once.
func NewCatalog(venues []domain.Venue, rejected int) *Catalog {
	return &Catalog{
		Venues:    venues,
		LoadedAt:  time.Now().UTC(),
		Rejected:  rejected,
		locations: NewSuggestionIndex(LocationDomain(venues)),
		genres:    NewSuggestionIndex(GenreDomain(venues)),
	}
}

func (c *Catalog) LocationCount() int { return c.locations.Len() }

func (c *Catalog) GenreCount() int { return c.genres.Len() }

func (c *Catalog) Stats() domain.CatalogStats {
	return domain.CatalogStats{
		Version:  c.Version,
		Venues:   len(c.Venues),
		Rejected: c.Rejected,
		LoadedAt: c.LoadedAt.Format(time.RFC3339),
	}
}

// Build parses a whole CSV payload into venues, in row order.
func Build(csvText string) ([]domain.Venue, error) {
	venues, _, err := build(csvText)
	return venues, err
}

// BuildCatalog is Build plus the bookkeeping a published catalog carries.
func BuildCatalog(csvText string) (*Catalog, error) {
	venues, rejected, err := build(csvText)
	if err != nil {
		return nil, err
	}
	return NewCatalog(venues, rejected), nil
}

func build(csvText string) ([]domain.Venue, int, error) {
	csvText = strings.TrimPrefix(csvText, "\ufeff")

	lines := make([]string, 0, strings.Count(csvText, "\n")+1)
	for _, l := range strings.Split(csvText, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, 0, domain.ErrEmptyFeed
	}

	header := ParseLine(lines[0])
	venues := make([]domain.Venue, 0, len(lines)-1)
	rejected := 0
	for _, l := range lines[1:] {
		v, ok := Normalize(header, ParseLine(l))
		if !ok {
			rejected++
			continue
		}
		venues = append(venues, v)
	}
	return venues, rejected, nil
}

// Store holds the current catalog. Readers always see one complete catalog;
// a refresh swaps the pointer and never edits a published one.
type Store struct {
	cur atomic.Pointer[Catalog]
}

func NewStore() *Store { return &Store{} }

// Load returns the current catalog or nil before the first successful ingest.
func (s *Store) Load() *Catalog { return s.cur.Load() }

// Publish stamps c with the next version and makes it current.
func (s *Store) Publish(c *Catalog) uint64 {
	for {
		prev := s.cur.Load()
		var next uint64 = 1
		if prev != nil {
			next = prev.Version + 1
		}
		c.Version = next
		if s.cur.CompareAndSwap(prev, c) {
			return next
		}
	}
}
