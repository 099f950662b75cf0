package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

// Batting table selectors, newest page revision first.
var (
	awayBattingSelectors = []string{"#tblAwayHitter2", "#tblAwayHitter", "#tblHitterAway"}
	homeBattingSelectors = []string{"#tblHomeHitter2", "#tblHomeHitter", "#tblHitterHome"}
)

// Header synonyms across page revisions.
var (
	hitsHeaders   = []string{"H", "안타", "HIT", "HITS"}
	hrHeaders     = []string{"HR", "홈런", "HOMERUN"}
	atBatsHeaders = []string{"AB", "타수"}
)

// battingStats is the extracted per-team line. hrFound distinguishes "no
// HR column" from "column present with value zero" so the notable-plays
// fallback only runs when the column is genuinely absent.
type battingStats struct {
	hits    int
	hr      int
	atBats  int
	hrFound bool
}

// firstTable returns the first selector that matches a table in doc.
func firstTable(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if tbl := doc.Find(sel).First(); tbl.Length() > 0 {
			return tbl
		}
	}
	return nil
}

// headerIndex maps normalized upper-case header text to column position.
func headerIndex(tbl *goquery.Selection) map[string]int {
	idx := make(map[string]int)
	tbl.Find("thead th").Each(func(i int, th *goquery.Selection) {
		h := strings.ToUpper(normalize.Space(th.Text()))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	})
	return idx
}

func findColumn(idx map[string]int, synonyms []string) (int, bool) {
	for _, s := range synonyms {
		if i, ok := idx[strings.ToUpper(s)]; ok {
			return i, true
		}
	}
	return 0, false
}

// totalsValue reads column col from the table's totals row (tfoot, or a
// tbody row labeled 합계). Returns false when no totals row exists.
func totalsValue(tbl *goquery.Selection, col int) (int, bool) {
	row := tbl.Find("tfoot tr").First()
	if row.Length() == 0 {
		tbl.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			if strings.Contains(normalize.Space(tr.Text()), "합계") {
				row = tr
				return false
			}
			return true
		})
	}
	if row.Length() == 0 {
		return 0, false
	}
	cells := row.Find("th, td")
	if col >= cells.Length() {
		return 0, false
	}
	return normalize.Int(cells.Eq(col).Text(), 0), true
}

// columnSum adds column col across the per-player rows, skipping a totals
// row if one lives in tbody.
func columnSum(tbl *goquery.Selection, col int) int {
	sum := 0
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if strings.Contains(normalize.Space(tr.Text()), "합계") {
			return
		}
		cells := tr.Find("th, td")
		if col < cells.Length() {
			sum += normalize.Int(cells.Eq(col).Text(), 0)
		}
	})
	return sum
}

// plateColumns are the inning columns of the batting grid: headers that
// are plain numbers (innings 1..15) hold plate-appearance cells.
func plateColumns(tbl *goquery.Selection) map[int]bool {
	cols := make(map[int]bool)
	tbl.Find("thead th").Each(func(i int, th *goquery.Selection) {
		h := normalize.Space(th.Text())
		if h == "" || strings.Trim(h, "0123456789") != "" {
			return
		}
		if n := normalize.Int(h, -1); n >= 1 && n <= 15 {
			cols[i] = true
		}
	})
	return cols
}

// classifyGrid walks every plate-appearance cell in the inning columns and
// tallies hits and official at-bats from the keyword taxonomy.
func classifyGrid(tbl *goquery.Selection, cols map[int]bool) (hits, atBats int) {
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if strings.Contains(normalize.Space(tr.Text()), "합계") {
			return
		}
		tr.Find("th, td").Each(func(i int, td *goquery.Selection) {
			if !cols[i] {
				return
			}
			// A cell may hold several plate appearances ("중안/좌2").
			for _, part := range strings.Split(td.Text(), "/") {
				kind := classifyPlate(part)
				if kind.isHit() {
					hits++
				}
				if kind.countsAtBat() {
					atBats++
				}
			}
		})
	})
	return hits, atBats
}

// batting extracts one team's hits, home runs, and at-bats. Per field the
// chain is: totals row by header synonym match, then the per-player column
// summed, then (hits/at-bats only) the plate-appearance classification.
// Every fallback degrades to a definite zero, never a hole.
func batting(doc *goquery.Document, selectors []string) battingStats {
	var out battingStats
	tbl := firstTable(doc, selectors)
	if tbl == nil {
		return out
	}
	idx := headerIndex(tbl)

	statColumn := func(synonyms []string) (int, bool) {
		col, ok := findColumn(idx, synonyms)
		if !ok {
			return 0, false
		}
		if v, ok := totalsValue(tbl, col); ok {
			return v, true
		}
		return columnSum(tbl, col), true
	}

	var haveHits, haveAB bool
	out.hits, haveHits = statColumn(hitsHeaders)
	out.hr, out.hrFound = statColumn(hrHeaders)
	out.atBats, haveAB = statColumn(atBatsHeaders)

	if !haveHits || !haveAB {
		cols := plateColumns(tbl)
		gridHits, gridAB := classifyGrid(tbl, cols)
		if !haveHits {
			out.hits = gridHits
		}
		if !haveAB {
			out.atBats = gridAB
		}
	}
	return out
}
