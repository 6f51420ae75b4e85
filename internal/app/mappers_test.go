package app_test

import (
	"testing"

	"gourmet_search/internal/app"
)

func TestNormalize_AliasPrecedence(t *testing.T) {
	// native header present but empty: wins, row is dropped
	header := []string{"店名", "name(店名)"}
	if _, ok := app.Normalize(header, []string{"", "Bilingual"}); ok {
		t.Fatalf("present-but-empty native name must short-circuit the bilingual alias")
	}

	// native header absent: falls through to the bilingual one
	v, ok := app.Normalize([]string{"name(店名)", "genre1"}, []string{"Bilingual", "和食"})
	if !ok || v.Name != "Bilingual" || v.Genre != "和食" {
		t.Fatalf("unexpected venue: %+v ok=%v", v, ok)
	}

	// both present: native wins
	v, _ = app.Normalize(header, []string{"ネイティブ", "Bilingual"})
	if v.Name != "ネイティブ" {
		t.Fatalf("native alias should win, got %q", v.Name)
	}
}

func TestNormalize_GenreJoin(t *testing.T) {
	header := []string{"店名", "ジャンル", "ジャンル2"}
	v, _ := app.Normalize(header, []string{"A", "Ramen", ""})
	if v.Genre != "Ramen" {
		t.Fatalf("genre = %q", v.Genre)
	}
	v, _ = app.Normalize(header, []string{"A", "Ramen", "Noodle"})
	if v.Genre != "Ramen, Noodle" {
		t.Fatalf("genre = %q", v.Genre)
	}
	// missing trailing cells read as empty
	v, _ = app.Normalize(header, []string{"A", "Ramen"})
	if v.Genre != "Ramen" {
		t.Fatalf("genre = %q", v.Genre)
	}
}

func TestNormalize_Priority(t *testing.T) {
	header := []string{"店名", "優先度"}
	for in, want := range map[string]int{"3": 3, " 12 ": 12, "": 0, "high": 0, "-4": 0, "1.5": 1, "3位": 3, "10件": 10, "+2": 2, "-": 0} {
		v, ok := app.Normalize(header, []string{"A", in})
		if !ok || v.Priority != want {
			t.Errorf("priority %q -> %d, want %d", in, v.Priority, want)
		}
	}
	v, _ := app.Normalize([]string{"店名", "priority"}, []string{"A", "7"})
	if v.Priority != 7 {
		t.Fatalf("bilingual priority alias: got %d", v.Priority)
	}
}

func TestNormalize_AllFields(t *testing.T) {
	header := []string{"店名", "ジャンル", "ジャンル2", "マップ", "地名", "駅名", "駅名2", "画像", "緯度", "経度", "優先度", "備考"}
	row := []string{"  すし処  ", "寿司", "和食", "https://maps.example/1", "奈良市", "奈良駅", "近鉄奈良駅", "img.png", "34.68", "135.82", "2", "ignored"}
	v, ok := app.Normalize(header, row)
	if !ok {
		t.Fatalf("row dropped")
	}
	if v.Name != "すし処" || v.Genre != "寿司, 和食" || v.Link != "https://maps.example/1" ||
		v.Location != "奈良市" || v.Station != "奈良駅" || v.Station2 != "近鉄奈良駅" ||
		v.Image != "img.png" || v.Latitude != "34.68" || v.Longitude != "135.82" || v.Priority != 2 {
		t.Fatalf("unexpected venue: %+v", v)
	}
}

func TestNormalize_BilingualHeaders(t *testing.T) {
	header := []string{"name(店名)", "genre1", "genre2", "link(Gmap)", "location(市)", "station1(駅)", "station2(駅)", "image(画像)", "lat(緯度)", "lng(軽度)"}
	row := []string{"Cafe", "カフェ", "", "l", "loc", "st1", "st2", "i", "1", "2"}
	v, ok := app.Normalize(header, row)
	if !ok || v.Name != "Cafe" || v.Genre != "カフェ" || v.Station != "st1" || v.Station2 != "st2" || v.Longitude != "2" {
		t.Fatalf("unexpected venue: %+v", v)
	}
}

func TestNormalize_BlankNameDropped(t *testing.T) {
	if _, ok := app.Normalize([]string{"店名"}, []string{"   "}); ok {
		t.Fatalf("blank name must be dropped")
	}
	if _, ok := app.Normalize([]string{"ジャンル"}, []string{"寿司"}); ok {
		t.Fatalf("missing name column must be dropped")
	}
}
