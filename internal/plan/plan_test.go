package plan

import (
	"testing"
	"time"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dates(p Plan) []string {
	out := make([]string, len(p.Dates))
	for i, d := range p.Dates {
		out[i] = d.Format(game.DayFormat)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTargets_ExplicitRange(t *testing.T) {
	now := day(2025, time.April, 10)
	p := Targets(Options{
		Since: day(2025, time.April, 1),
		Until: day(2025, time.April, 3),
	}, nil, now)

	want := []string{"2025-04-01", "2025-04-02", "2025-04-03"}
	if !equal(dates(p), want) {
		t.Errorf("dates = %v, expected %v", dates(p), want)
	}
}

func TestTargets_BootstrapWhenEmpty(t *testing.T) {
	now := day(2025, time.March, 25)
	p := Targets(Options{Bootstrap: day(2025, time.March, 22)}, nil, now)

	// since = bootstrap, until = yesterday
	want := []string{"2025-03-22", "2025-03-23", "2025-03-24"}
	if !equal(dates(p), want) {
		t.Errorf("dates = %v, expected %v", dates(p), want)
	}
}

func TestTargets_ResumesAfterLatestStoredDate(t *testing.T) {
	now := day(2025, time.April, 5)
	existing := []game.Record{
		{Date: "2025-04-01", AwayResult: game.ResultWin, HomeResult: game.ResultLoss},
		{Date: "2025-04-02", AwayResult: game.ResultWin, HomeResult: game.ResultLoss},
	}
	p := Targets(Options{}, existing, now)

	want := []string{"2025-04-03", "2025-04-04"}
	if !equal(dates(p), want) {
		t.Errorf("dates = %v, expected %v", dates(p), want)
	}
}

func TestTargets_UntilClippedToToday(t *testing.T) {
	now := day(2025, time.April, 5)
	p := Targets(Options{
		Since: day(2025, time.April, 4),
		Until: day(2025, time.April, 20),
	}, nil, now)

	if p.Until != day(2025, time.April, 5) {
		t.Errorf("until = %v, expected clipping to today", p.Until)
	}
}

func TestTargets_EmptyWhenSinceAfterUntil(t *testing.T) {
	now := day(2025, time.April, 5)
	p := Targets(Options{
		Since: day(2025, time.April, 4),
		Until: day(2025, time.April, 1),
	}, nil, now)

	if len(p.Dates) != 0 {
		t.Errorf("dates = %v, expected empty set", dates(p))
	}
}

func TestTargets_PendingRecheckInclusion(t *testing.T) {
	now := day(2025, time.April, 10)
	existing := []game.Record{
		// Latest stored date, so the primary range starts April 9.
		{Date: "2025-04-08", AwayResult: game.ResultWin, HomeResult: game.ResultLoss},
		// Pending within the recheck window but outside the primary range.
		{Date: "2025-04-08", AwayTeam: "LG", HomeTeam: "두산",
			AwayResult: game.ResultPending, HomeResult: game.ResultPending},
		// Pending but older than the window: not rechecked.
		{Date: "2025-04-01", AwayResult: game.ResultPending, HomeResult: game.ResultPending},
	}
	p := Targets(Options{RecheckDays: 3}, existing, now)

	want := []string{"2025-04-08", "2025-04-09"}
	if !equal(dates(p), want) {
		t.Errorf("dates = %v, expected %v", dates(p), want)
	}
}

func TestTargets_Idempotent(t *testing.T) {
	now := day(2025, time.April, 10)
	existing := []game.Record{
		{Date: "2025-04-07", AwayResult: game.ResultPending, HomeResult: game.ResultPending},
	}
	opts := Options{Since: day(2025, time.April, 5), Until: day(2025, time.April, 6)}

	first := Targets(opts, existing, now)
	second := Targets(opts, existing, now)
	if !equal(dates(first), dates(second)) {
		t.Errorf("repeated planning diverged: %v vs %v", dates(first), dates(second))
	}
}
