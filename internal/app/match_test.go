package app_test

import (
	"testing"

	"gourmet_search/internal/app"
)

func TestFoldKana(t *testing.T) {
	if got := app.FoldKana("ラーメンABCヴヶ"); got != "らーめんABCゔゖ" {
		t.Fatalf("FoldKana = %q", got)
	}
	// ヷ (U+30F7) is outside the folded block
	if got := app.FoldKana("ヷ"); got != "ヷ" {
		t.Fatalf("FoldKana(ヷ) = %q", got)
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		haystack, needle string
		want             bool
	}{
		{"ナラ駅", "なら", true},  // hiragana needle, katakana haystack
		{"なら駅", "ナラ", true},  // and the other way round
		{"奈良駅", "奈良", true},
		{"奈良駅", "なら", false}, // kanji is never folded
		{"Ramen", "ramen", false},
		{"anything", "", true},
		{"anything", "   ", true},
		{"", "x", false},
	}
	for _, tc := range cases {
		if got := app.Matches(tc.haystack, tc.needle); got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.haystack, tc.needle, got, tc.want)
		}
	}
}
