package app

import "strings"

// ParseLine splits one line of comma-separated text into cells.
//
// A double quote toggles the quoted state and is dropped; a comma splits only
// outside a quoted span. Doubled quotes are not unescaped and a quote left open
// at end of line simply ends the span. Each cell is trimmed, then loses at most
// one leading and one trailing quote.
func ParseLine(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			out = append(out, cleanCell(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(out, cleanCell(cur.String()))
}

func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
