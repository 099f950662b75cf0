package plan

import (
	"sort"
	"time"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

// DefaultBootstrap is the season opening day used when no prior dataset
// state exists and no explicit since date is given.
var DefaultBootstrap = time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)

// DefaultRecheckDays is how far back pending games are re-attempted.
const DefaultRecheckDays = 3

// Options controls target-range planning. Zero Since/Until mean "derive
// from prior state" and "yesterday" respectively.
type Options struct {
	Since       time.Time
	Until       time.Time
	Bootstrap   time.Time
	RecheckDays int
}

// Plan is the set of dates one run will crawl plus the primary range that
// the merge step will replace.
type Plan struct {
	Dates []time.Time
	Since time.Time
	Until time.Time
}

// Targets decides which calendar dates need a pass. The primary range is
// [since, until]; additionally every date within the recheck window whose
// stored rows include a pending result is unioned in, so outcomes that
// were unresolved when first crawled get a fresh attempt. Deterministic
// for fixed inputs.
func Targets(opts Options, existing []game.Record, now time.Time) Plan {
	today := game.Day(now)

	bootstrap := opts.Bootstrap
	if bootstrap.IsZero() {
		bootstrap = DefaultBootstrap
	}
	recheck := opts.RecheckDays
	if recheck == 0 {
		recheck = DefaultRecheckDays
	}

	since := game.Day(opts.Since)
	if opts.Since.IsZero() {
		if latest, ok := latestDate(existing); ok {
			since = latest.AddDate(0, 0, 1)
		} else {
			since = bootstrap
		}
	}

	until := game.Day(opts.Until)
	if opts.Until.IsZero() {
		until = today.AddDate(0, 0, -1)
	}
	if until.After(today) {
		until = today
	}

	set := make(map[string]time.Time)
	for d := since; !d.After(until); d = d.AddDate(0, 0, 1) {
		set[d.Format(game.DayFormat)] = d
	}

	// Pending games from the recent past are retried even when the
	// primary range excludes their date.
	windowStart := today.AddDate(0, 0, -recheck)
	for i := range existing {
		if !existing[i].Pending() {
			continue
		}
		d, err := game.ParseDay(existing[i].Date)
		if err != nil {
			continue
		}
		if d.Before(windowStart) || d.After(today) {
			continue
		}
		set[d.Format(game.DayFormat)] = d
	}

	dates := make([]time.Time, 0, len(set))
	for _, d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return Plan{Dates: dates, Since: since, Until: until}
}

func latestDate(records []game.Record) (time.Time, bool) {
	var latest time.Time
	found := false
	for i := range records {
		d, err := game.ParseDay(records[i].Date)
		if err != nil {
			continue
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}
