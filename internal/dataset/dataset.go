package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

// corruptVenuePattern matches venue strings that are actually a raw
// 8-digit date identifier, a known extraction-corruption mode.
var corruptVenuePattern = regexp.MustCompile(`^\d{8}$`)

// Store reads and writes the durable dataset file. The file is read once
// at the start of a run and rewritten once at the end; it is never patched
// in place.
type Store struct {
	path string
}

// NewStore points at the dataset file, expanding a leading ~/.
func NewStore(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return &Store{path: path}, nil
}

// Path returns the resolved dataset file location.
func (s *Store) Path() string { return s.path }

// Load reads the dataset. A missing file yields an empty dataset; rows
// that fail to parse are dropped and counted.
func (s *Store) Load() (records []game.Record, dropped int, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("reading dataset: %w", err)
	}
	records, dropped, err = game.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, dropped, fmt.Errorf("parsing dataset: %w", err)
	}
	return records, dropped, nil
}

// Write rewrites the whole dataset through a temp-file rename so the
// downstream reader only ever observes a complete file.
func (s *Store) Write(records []game.Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := game.WriteCSV(&buf, records); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing dataset: %w", err)
	}
	return nil
}

// Upsert folds a new batch into the existing dataset:
//
//  1. malformed rows are dropped from both sides (corrupt venue strings;
//     scores were already coerced or rejected at parse time),
//  2. every surviving row's batting averages are recomputed,
//  3. existing rows inside [since, until] or matching a new row's key are
//     superseded,
//  4. the result is sorted by (date, venue, home team) and deduplicated by
//     composite key keeping the latest occurrence.
//
// dropped counts the malformed rows removed in step 1.
func Upsert(existing, batch []game.Record, since, until time.Time) (merged []game.Record, dropped int) {
	clean := func(records []game.Record) []game.Record {
		out := make([]game.Record, 0, len(records))
		for i := range records {
			if malformed(&records[i]) {
				dropped++
				continue
			}
			r := records[i]
			r.RecomputeAverages()
			out = append(out, r)
		}
		return out
	}
	existing = clean(existing)
	batch = clean(batch)

	batchKeys := make(map[string]bool, len(batch))
	for i := range batch {
		batchKeys[batch[i].Key()] = true
	}

	merged = make([]game.Record, 0, len(existing)+len(batch))
	for i := range existing {
		r := existing[i]
		if batchKeys[r.Key()] {
			continue
		}
		if d, err := game.ParseDay(r.Date); err == nil {
			if !d.Before(since) && !d.After(until) {
				continue
			}
		}
		merged = append(merged, r)
	}
	merged = append(merged, batch...)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Date != merged[j].Date {
			return merged[i].Date < merged[j].Date
		}
		if merged[i].Venue != merged[j].Venue {
			return merged[i].Venue < merged[j].Venue
		}
		return merged[i].HomeTeam < merged[j].HomeTeam
	})

	// Keep the latest occurrence per key.
	seen := make(map[string]int, len(merged))
	deduped := merged[:0]
	for i := range merged {
		key := merged[i].Key()
		if at, ok := seen[key]; ok {
			deduped[at] = merged[i]
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, merged[i])
	}
	return deduped, dropped
}

// malformed flags rows carrying extraction corruption: a venue that is a
// raw 8-digit date, or a missing team.
func malformed(r *game.Record) bool {
	if corruptVenuePattern.MatchString(strings.TrimSpace(r.Venue)) {
		return true
	}
	if r.AwayTeam == "" || r.HomeTeam == "" {
		return true
	}
	if r.AwayScore < 0 || r.HomeScore < 0 {
		return true
	}
	return false
}
