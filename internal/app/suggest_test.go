package app_test

import (
	"reflect"
	"testing"

	"gourmet_search/internal/app"
	"gourmet_search/internal/domain"
)

func TestSuggestions_TruncatesInFirstSeenOrder(t *testing.T) {
	domainList := []string{"駅8", "駅1", "駅7", "", "駅2", "駅1", "駅6", "駅3", "駅5", "駅4", "バス停"}
	want := []string{"駅8", "駅1", "駅7", "駅2", "駅6"}

	if got := app.Suggestions("駅", domainList, 5); !reflect.DeepEqual(got, want) {
		t.Fatalf("Suggestions = %v, want %v", got, want)
	}
	idx := app.NewSuggestionIndex(domainList)
	if got := idx.Suggest("駅", 5); !reflect.DeepEqual(got, want) {
		t.Fatalf("index Suggest = %v, want %v", got, want)
	}
}

func TestSuggestions_EmptyPartial(t *testing.T) {
	if got := app.Suggestions("", []string{"a"}, 5); len(got) != 0 {
		t.Fatalf("expected nothing, got %v", got)
	}
	if got := app.NewSuggestionIndex([]string{"a"}).Suggest("", 5); len(got) != 0 {
		t.Fatalf("expected nothing, got %v", got)
	}
}

func TestSuggestionIndex_MatchesLinearScan(t *testing.T) {
	cands := []string{"ナラ駅", "奈良市", "なら町", "京都駅", "キョウト", "きょうと駅", "大阪", "新大阪駅", "ラーメン", "らーめん"}
	idx := app.NewSuggestionIndex(cands)
	for _, q := range []string{"なら", "ナラ", "駅", "大阪", "きょう", "ー", "めん", "x", " ", "奈良市", "ら"} {
		for _, limit := range []int{1, 3, 5, 20} {
			want := app.Suggestions(q, cands, limit)
			got := idx.Suggest(q, limit)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("q=%q limit=%d: index %v, linear %v", q, limit, got, want)
			}
		}
	}
}

func TestDomains(t *testing.T) {
	vs := []domain.Venue{
		{Location: "奈良市", Station: "奈良駅", Genre: "寿司, 和食"},
		{Location: "京都市", Station: "奈良駅", Station2: "四条駅", Genre: "和食"},
		{Location: "", Station: "京都駅", Genre: "カレー,  インド料理 ,"},
	}
	wantLoc := []string{"奈良市", "京都市", "奈良駅", "京都駅", "四条駅"}
	if got := app.LocationDomain(vs); !reflect.DeepEqual(got, wantLoc) {
		t.Fatalf("LocationDomain = %v, want %v", got, wantLoc)
	}
	wantGenre := []string{"寿司", "和食", "カレー", "インド料理"}
	if got := app.GenreDomain(vs); !reflect.DeepEqual(got, wantGenre) {
		t.Fatalf("GenreDomain = %v, want %v", got, wantGenre)
	}
}
