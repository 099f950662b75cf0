package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("parsing fixture %s: %v", name, err)
	}
	return doc
}

var day = time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)

func TestGame_FullBoxScore(t *testing.T) {
	doc := loadFixture(t, "review_full.html")

	rec, err := Game(doc, day)
	if err != nil {
		t.Fatalf("Game failed: %v", err)
	}

	want := game.Record{
		Date:       "2025-03-22",
		Venue:      "잠실",
		AwayTeam:   "LG",
		HomeTeam:   "두산",
		AwayScore:  3,
		HomeScore:  5,
		AwayResult: game.ResultLoss,
		HomeResult: game.ResultWin,
		AwayHits:   7,
		HomeHits:   10,
		AwayHR:     1,
		HomeHR:     2,
		AwayAB:     30,
		HomeAB:     33,
		AwayAvg:    0.2333,
		HomeAvg:    0.3030,
	}
	if *rec != want {
		t.Errorf("record = %+v, expected %+v", *rec, want)
	}
}

// A 0-0 line without a declared outcome means the game has not finished:
// the record comes back pending with no further extraction.
func TestGame_PendingWhenScorelessUndeclared(t *testing.T) {
	doc := loadFixture(t, "review_pending.html")

	rec, err := Game(doc, day)
	if err != nil {
		t.Fatalf("Game failed: %v", err)
	}

	if rec.AwayTeam != "롯데" || rec.HomeTeam != "NC" {
		t.Errorf("teams = %s/%s, expected 롯데/NC", rec.AwayTeam, rec.HomeTeam)
	}
	if rec.Venue != "사직" {
		t.Errorf("venue = %s, expected 사직", rec.Venue)
	}
	if !rec.Pending() {
		t.Errorf("record not pending: %+v", rec)
	}
	if rec.AwayScore != 0 || rec.HomeScore != 0 || rec.AwayAB != 0 {
		t.Errorf("pending record carries extracted stats: %+v", rec)
	}
}

// An older page revision without the summary scoreboard or per-stat batting
// columns exercises the full fallback chain: team/outcome table for the
// score, plate-appearance grid for hits and at-bats, notable-plays notes
// for home runs.
func TestGame_FallbackChains(t *testing.T) {
	doc := loadFixture(t, "review_legacy.html")

	rec, err := Game(doc, day)
	if err != nil {
		t.Fatalf("Game failed: %v", err)
	}

	if rec.AwayTeam != "한화" || rec.HomeTeam != "삼성" {
		t.Fatalf("teams = %s/%s, expected 한화/삼성", rec.AwayTeam, rec.HomeTeam)
	}
	if rec.AwayScore != 4 || rec.HomeScore != 2 {
		t.Errorf("score = %d-%d, expected 4-2", rec.AwayScore, rec.HomeScore)
	}
	if rec.AwayResult != game.ResultWin || rec.HomeResult != game.ResultLoss {
		t.Errorf("results = %s/%s, expected win/loss", rec.AwayResult, rec.HomeResult)
	}
	if rec.Venue != "대전" {
		t.Errorf("venue = %s, expected 대전", rec.Venue)
	}

	if rec.AwayHits != 5 || rec.AwayAB != 8 {
		t.Errorf("away line = %d hits / %d at-bats, expected 5/8", rec.AwayHits, rec.AwayAB)
	}
	if rec.HomeHits != 1 || rec.HomeAB != 3 {
		t.Errorf("home line = %d hits / %d at-bats, expected 1/3", rec.HomeHits, rec.HomeAB)
	}

	// Two mentions resolve by pitcher roster, one by inning half, and the
	// unresolvable fourth is dropped rather than guessed.
	if rec.AwayHR != 1 || rec.HomeHR != 2 {
		t.Errorf("home runs = %d/%d, expected 1/2", rec.AwayHR, rec.HomeHR)
	}

	if rec.AwayAvg != 0.625 || rec.HomeAvg != 0.3333 {
		t.Errorf("averages = %v/%v, expected 0.625/0.3333", rec.AwayAvg, rec.HomeAvg)
	}
}

func TestGame_NoScoreboard(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>empty</p></body></html>"))
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if _, err := Game(doc, day); !errors.Is(err, ErrNoScoreboard) {
		t.Errorf("error = %v, expected ErrNoScoreboard", err)
	}
}
