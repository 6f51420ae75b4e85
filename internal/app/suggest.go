package app

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"gourmet_search/internal/domain"
)

const DefaultSuggestLimit = 5

// LocationDomain is every location, then every station, then every station2
// value, deduplicated in first-seen order with blanks removed.
func LocationDomain(venues []domain.Venue) []string {
	all := make([]string, 0, len(venues)*3)
	for _, v := range venues {
		all = append(all, v.Location)
	}
	for _, v := range venues {
		all = append(all, v.Station)
	}
	for _, v := range venues {
		all = append(all, v.Station2)
	}
	return dedupe(all)
}

// GenreDomain splits every genre on commas and dedupes the trimmed tokens.
func GenreDomain(venues []domain.Venue) []string {
	var all []string
	for _, v := range venues {
		for _, g := range strings.Split(v.Genre, ",") {
			all = append(all, strings.TrimSpace(g))
		}
	}
	return dedupe(all)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Suggestions filters candidates against partial input, keeping first-seen
// order. An empty partial yields nothing.
func Suggestions(partial string, candidates []string, limit int) []string {
	if partial == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	out := make([]string, 0, limit)
	for _, c := range dedupe(candidates) {
		if len(out) == limit {
			break
		}
		if Matches(c, partial) {
			out = append(out, c)
		}
	}
	return out
}

// SuggestionIndex answers Suggestions queries for a fixed candidate list.
// Every kana-folded suffix of every candidate is a trie key, so a substring
// lookup becomes a prefix walk.
type SuggestionIndex struct {
	candidates []string
	trie       *patricia.Trie
}

func NewSuggestionIndex(candidates []string) *SuggestionIndex {
	idx := &SuggestionIndex{
		candidates: dedupe(candidates),
		trie:       patricia.NewTrie(),
	}
	for i, c := range idx.candidates {
		folded := FoldKana(c)
		for off := range folded {
			key := patricia.Prefix(folded[off:])
			ids, _ := idx.trie.Get(key).([]int)
			if n := len(ids); n > 0 && ids[n-1] == i {
				continue
			}
			idx.trie.Set(key, append(ids, i))
		}
	}
	return idx
}

func (x *SuggestionIndex) Len() int { return len(x.candidates) }

// Suggest behaves exactly like Suggestions over the indexed candidates.
func (x *SuggestionIndex) Suggest(partial string, limit int) []string {
	if partial == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if strings.TrimSpace(partial) == "" {
		return append([]string{}, x.candidates[:min(limit, len(x.candidates))]...)
	}

	hit := make(map[int]struct{})
	_ = x.trie.VisitSubtree(patricia.Prefix(FoldKana(partial)), func(_ patricia.Prefix, item patricia.Item) error {
		for _, id := range item.([]int) {
			hit[id] = struct{}{}
		}
		return nil
	})
	ids := make([]int, 0, len(hit))
	for id := range hit {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]string, 0, min(limit, len(ids)))
	for _, id := range ids[:min(limit, len(ids))] {
		out = append(out, x.candidates[id])
	}
	return out
}
