package app

import (
	"strconv"
	"strings"

	"gourmet_search/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Logical venue fields recognized in the feed header.
const (
	fieldName      = "name"
	fieldGenre     = "genre"
	fieldGenre2    = "genre2"
	fieldLink      = "link"
	fieldLocation  = "location"
	fieldStation   = "station"
	fieldStation2  = "station2"
	fieldImage     = "image"
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
	fieldPriority  = "priority"
)

// venueAliases lists, per logical field, the literal headers accepted from the
// sheet in probe order. The native header comes first, the bilingual one second.
var venueAliases = map[string][]string{
	fieldName:      {"店名", "name(店名)"},
	fieldGenre:     {"ジャンル", "genre1"},
	fieldGenre2:    {"ジャンル2", "genre2"},
	fieldLink:      {"マップ", "link(Gmap)"},
	fieldLocation:  {"地名", "location(市)"},
	fieldStation:   {"駅名", "station1(駅)"},
	fieldStation2:  {"駅名2", "station2(駅)"},
	fieldImage:     {"画像", "image(画像)"},
	fieldLatitude:  {"緯度", "lat(緯度)"},
	fieldLongitude: {"経度", "lng(軽度)"},
	fieldPriority:  {"優先度", "priority"},
}

/********** tiny helpers **********/

// zipRow pairs header cells with row cells. Missing trailing cells map to "".
// A header repeated in the row keeps its last value.
func zipRow(header, row []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, col := range header {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		m[col] = v
	}
	return m
}

// firstAlias returns the value of the first alias present in m. A present but
// empty column wins over later aliases; only a missing column falls through.
func firstAlias(m map[string]string, key string) string {
	for _, h := range venueAliases[key] {
		if v, ok := m[h]; ok {
			return v
		}
	}
	return ""
}

func joinGenres(primary, secondary string) string {
	if secondary == "" {
		return primary
	}
	return primary + ", " + secondary
}

// parsePriority reads the leading integer of s ("3位" is 3, "1.5" is 1).
// No digits, negatives and overflow all become 0.
func parsePriority(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

/********** venue mapper **********/

// Normalize maps one parsed row onto a Venue using the header row.
// ok is false when the row has no usable name and must be dropped.
func Normalize(header, row []string) (v domain.Venue, ok bool) {
	m := zipRow(header, row)

	name := strings.TrimSpace(firstAlias(m, fieldName))
	if name == "" {
		return domain.Venue{}, false
	}
	return domain.Venue{
		Name:      name,
		Genre:     joinGenres(firstAlias(m, fieldGenre), firstAlias(m, fieldGenre2)),
		Link:      firstAlias(m, fieldLink),
		Location:  firstAlias(m, fieldLocation),
		Station:   firstAlias(m, fieldStation),
		Station2:  firstAlias(m, fieldStation2),
		Image:     firstAlias(m, fieldImage),
		Latitude:  firstAlias(m, fieldLatitude),
		Longitude: firstAlias(m, fieldLongitude),
		Priority:  parsePriority(firstAlias(m, fieldPriority)),
	}, true
}
