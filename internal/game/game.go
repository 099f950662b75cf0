package game

import (
	"math"
	"time"
)

// Result is the outcome of a game from one side's perspective.
type Result string

const (
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultDraw    Result = "draw"
	ResultPending Result = "pending"
)

// koreanResults maps result markers as rendered on the source site to the
// stored values. Older dataset files written by earlier crawler revisions
// carry the Korean forms, so the CSV reader accepts both.
var koreanResults = map[string]Result{
	"승":  ResultWin,
	"패":  ResultLoss,
	"무":  ResultDraw,
	"예정": ResultPending,
}

// ParseResult normalizes a result string. Unknown values map to pending.
func ParseResult(s string) Result {
	switch Result(s) {
	case ResultWin, ResultLoss, ResultDraw, ResultPending:
		return Result(s)
	}
	if r, ok := koreanResults[s]; ok {
		return r
	}
	return ResultPending
}

// Record is one game's box score. Identified by GameID when the source
// exposes one, else by the (Date, AwayTeam, HomeTeam) composite key.
type Record struct {
	GameID     string // external identifier, not persisted
	Date       string // ISO YYYY-MM-DD
	Venue      string
	AwayTeam   string
	HomeTeam   string
	AwayScore  int
	HomeScore  int
	AwayResult Result
	HomeResult Result
	AwayHits   int
	HomeHits   int
	AwayHR     int
	HomeHR     int
	AwayAB     int
	HomeAB     int
	AwayAvg    float64
	HomeAvg    float64
}

// Key returns the composite identity used for deduplication and upserts.
func (r *Record) Key() string {
	return r.Date + "|" + r.AwayTeam + "|" + r.HomeTeam
}

// Pending reports whether the game has no final outcome yet.
func (r *Record) Pending() bool {
	return r.AwayResult == ResultPending || r.HomeResult == ResultPending
}

// SetResults fills both result fields from the final score.
func (r *Record) SetResults() {
	switch {
	case r.AwayScore > r.HomeScore:
		r.AwayResult, r.HomeResult = ResultWin, ResultLoss
	case r.AwayScore < r.HomeScore:
		r.AwayResult, r.HomeResult = ResultLoss, ResultWin
	default:
		r.AwayResult, r.HomeResult = ResultDraw, ResultDraw
	}
}

// Average computes hits/atBats rounded to 4 decimals, 0 when atBats is 0.
func Average(hits, atBats int) float64 {
	if atBats == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(atBats)*10000) / 10000
}

// RecomputeAverages rederives both batting averages from hits and at-bats.
// Stored averages are never trusted across merges.
func (r *Record) RecomputeAverages() {
	r.AwayAvg = Average(r.AwayHits, r.AwayAB)
	r.HomeAvg = Average(r.HomeHits, r.HomeAB)
}

// DayFormat is the ISO form stored in the dataset; CompactFormat is the
// form the source site embeds in game identifiers.
const (
	DayFormat     = "2006-01-02"
	CompactFormat = "20060102"
)

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts either the ISO or the compact day form.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(CompactFormat, s)
}
