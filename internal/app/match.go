package app

import "strings"

const (
	katakanaFirst = 0x30A1 // ァ
	katakanaLast  = 0x30F6 // ヶ
	kanaOffset    = 0x60
)

// FoldKana maps katakana in U+30A1..U+30F6 onto hiragana. Everything else,
// including case and other scripts, passes through.
func FoldKana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFirst && r <= katakanaLast {
			return r - kanaOffset
		}
		return r
	}, s)
}

// Matches reports whether needle occurs in haystack after kana folding.
// A blank needle matches everything.
func Matches(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	return strings.Contains(FoldKana(haystack), FoldKana(needle))
}
