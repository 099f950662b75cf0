package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

// ErrNoScoreboard reports a review document with no usable score table at
// all; the caller skips the game and continues.
var ErrNoScoreboard = errors.New("no scoreboard found")

var (
	venueSelectors       = []string{"#txtStadium", "#lblStadium", ".stadium"}
	scoreboardSelectors  = []string{"#tblScoreboard3", "#tblScoreboard2"}
	teamOutcomeSelectors = []string{"#tblScoreboard1", ".tbl-team-score"}
	runsHeaders          = []string{"R", "득점", "점수"}
)

// scoreLine is the extracted score summary. declared reports whether the
// document carries an explicit outcome marker, distinguishing a genuine
// 0-0 draw from a game that has not started.
type scoreLine struct {
	away     string
	home     string
	awayRuns int
	homeRuns int
	declared bool
}

// Game builds one normalized record from a rendered review document. Pure:
// it performs no navigation. Every field runs its ordered fallback chain,
// and each chain's final fallback yields a definite (possibly zero) value.
//
// Row-order convention: the scoreboard lists the away side first and the
// home side second. A "runs" header match selects the column, never the
// row order.
func Game(doc *goquery.Document, day time.Time) (*game.Record, error) {
	rec := &game.Record{Date: day.Format(game.DayFormat)}
	rec.Venue = venue(doc)

	sb, ok := scoreboard(doc)
	if !ok {
		sb, ok = teamOutcomes(doc)
	}
	if !ok {
		return nil, ErrNoScoreboard
	}
	rec.AwayTeam = normalize.Team(sb.away)
	rec.HomeTeam = normalize.Team(sb.home)

	// A 0-0 line with no declared outcome is a game that has not finished:
	// record it pending and skip the remaining field extraction this pass.
	if sb.awayRuns == 0 && sb.homeRuns == 0 && !sb.declared {
		rec.AwayResult = game.ResultPending
		rec.HomeResult = game.ResultPending
		return rec, nil
	}

	rec.AwayScore = sb.awayRuns
	rec.HomeScore = sb.homeRuns
	rec.SetResults()

	awayBat := batting(doc, awayBattingSelectors)
	homeBat := batting(doc, homeBattingSelectors)
	rec.AwayHits, rec.AwayHR, rec.AwayAB = awayBat.hits, awayBat.hr, awayBat.atBats
	rec.HomeHits, rec.HomeHR, rec.HomeAB = homeBat.hits, homeBat.hr, homeBat.atBats

	if !awayBat.hrFound || !homeBat.hrFound {
		if away, home, ok := homeRunsFromNotes(doc); ok {
			if !awayBat.hrFound {
				rec.AwayHR = away
			}
			if !homeBat.hrFound {
				rec.HomeHR = home
			}
		}
	}

	rec.RecomputeAverages()
	return rec, nil
}

// venue reads and canonicalizes the ballpark name, empty when absent.
func venue(doc *goquery.Document) string {
	for _, sel := range venueSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			if v := normalize.CleanVenue(el.Text()); v != "" {
				return v
			}
		}
	}
	return ""
}

// scoreboard reads the summary score table. The runs column is located by
// header match, falling back to the last column; rows are away-then-home.
func scoreboard(doc *goquery.Document) (scoreLine, bool) {
	tbl := firstTable(doc, scoreboardSelectors)
	if tbl == nil {
		return scoreLine{}, false
	}

	runsCol, haveRunsCol := findColumn(headerIndex(tbl), runsHeaders)

	var rows [][]string
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, normalize.Space(c.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) < 2 {
		return scoreLine{}, false
	}

	runsFrom := func(cells []string) int {
		if haveRunsCol && runsCol < len(cells) {
			return normalize.Int(cells[runsCol], 0)
		}
		return normalize.Int(cells[len(cells)-1], 0)
	}

	sb := scoreLine{
		away:     rows[0][0],
		home:     rows[1][0],
		awayRuns: runsFrom(rows[0]),
		homeRuns: runsFrom(rows[1]),
	}
	if sb.away == "" || sb.home == "" {
		return scoreLine{}, false
	}
	sb.declared = outcomeDeclared(doc)
	return sb, true
}

// teamOutcomes is the secondary strategy: a team/outcome table whose rows
// carry the team name, its runs, and an explicit result marker.
func teamOutcomes(doc *goquery.Document) (scoreLine, bool) {
	tbl := firstTable(doc, teamOutcomeSelectors)
	if tbl == nil {
		return scoreLine{}, false
	}

	type teamRow struct {
		name     string
		runs     int
		declared bool
	}
	var rows []teamRow
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		row := teamRow{name: normalize.Space(cells.Eq(0).Text())}
		cells.Each(func(i int, c *goquery.Selection) {
			if i == 0 {
				return
			}
			text := normalize.Space(c.Text())
			switch text {
			case "승", "패", "무":
				row.declared = true
			default:
				if strings.Trim(text, "0123456789") == "" && text != "" {
					row.runs = normalize.Int(text, 0)
				}
			}
		})
		if row.name != "" {
			rows = append(rows, row)
		}
	})
	if len(rows) < 2 {
		return scoreLine{}, false
	}

	return scoreLine{
		away:     rows[0].name,
		home:     rows[1].name,
		awayRuns: rows[0].runs,
		homeRuns: rows[1].runs,
		declared: rows[0].declared || rows[1].declared,
	}, true
}

// outcomeDeclared reports whether the document carries an explicit result
// marker for either side.
func outcomeDeclared(doc *goquery.Document) bool {
	tbl := firstTable(doc, teamOutcomeSelectors)
	if tbl == nil {
		return false
	}
	declared := false
	tbl.Find("tbody td, tbody th").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		switch normalize.Space(c.Text()) {
		case "승", "패", "무":
			declared = true
			return false
		}
		return true
	})
	return declared
}
