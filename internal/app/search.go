package app

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gourmet_search/internal/domain"
)

// Search filters venues by location and genre and returns them ranked.
// The input slice is left untouched.
func Search(venues []domain.Venue, locationQuery, genreQuery string) []domain.Venue {
	anyLocation := strings.TrimSpace(locationQuery) == ""
	anyGenre := strings.TrimSpace(genreQuery) == ""

	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		locOK := anyLocation ||
			Matches(v.Location, locationQuery) ||
			Matches(v.Station, locationQuery) ||
			Matches(v.Station2, locationQuery)
		genreOK := anyGenre || Matches(v.Genre, genreQuery)
		if locOK && genreOK {
			out = append(out, v)
		}
	}
	Rank(out)
	return out
}

// Rank sorts in place: priority descending, then name in 50-on order.
// Equal keys keep their encounter order.
func Rank(venues []domain.Venue) {
	// Root collation: the ja tailoring sorts names containing ー ahead of
	// their kana neighbours. collate.Collator keeps scratch buffers, one per call.
	col := collate.New(language.Und)
	sort.SliceStable(venues, func(i, j int) bool {
		a, b := venues[i], venues[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
}
