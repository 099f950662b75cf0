package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

var day = time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)

func record() game.Record {
	r := game.Record{
		Date:      "2025-03-22",
		Venue:     "잠실",
		AwayTeam:  "LG",
		HomeTeam:  "두산",
		AwayScore: 3,
		HomeScore: 5,
	}
	r.SetResults()
	return r
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.Save(day, []game.Record{record()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, ok, err := store.Load(day)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("checkpoint reported missing after Save")
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records, expected 1", len(records))
	}
	if records[0].Key() != "2025-03-22|LG|두산" {
		t.Errorf("record key = %s, expected 2025-03-22|LG|두산", records[0].Key())
	}
	if records[0].AwayResult != game.ResultLoss || records[0].HomeResult != game.ResultWin {
		t.Errorf("results = %s/%s, expected loss/win",
			records[0].AwayResult, records[0].HomeResult)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, ok, err := store.Load(day)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok || records != nil {
		t.Errorf("missing checkpoint reported present: ok=%v records=%v", ok, records)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := record()
	second := record()
	second.AwayScore, second.HomeScore = 7, 2
	second.SetResults()

	if err := store.Save(day, []game.Record{first, second}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(day, []game.Record{second}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, ok, err := store.Load(day)
	if err != nil || !ok {
		t.Fatalf("Load failed: records=%v ok=%v err=%v", records, ok, err)
	}
	if len(records) != 1 || records[0].AwayScore != 7 {
		t.Errorf("checkpoint not overwritten wholesale: %+v", records)
	}
}

func TestStore_FilePerDate(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := store.Save(day, []game.Record{record()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(day.AddDate(0, 0, 1), nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, name := range []string{"20250322.csv", "20250323.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected checkpoint file %s: %v", name, err)
		}
	}
}
