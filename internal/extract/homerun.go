package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

// Notable-plays table and pitcher box selectors.
var (
	notableSelectors     = []string{"#tblEtc", "#tblNotable", ".tbl-etc"}
	awayPitcherSelectors = []string{"#tblAwayPitcher2", "#tblAwayPitcher", "#tblPitcherAway"}
	homePitcherSelectors = []string{"#tblHomePitcher2", "#tblHomePitcher", "#tblPitcherHome"}
)

var (
	// One home-run mention: batter name followed by a parenthetical note,
	// e.g. "김현수(2호 3회초 2점 투수 박세웅)".
	hrMentionPattern = regexp.MustCompile(`([가-힣A-Za-z0-9·]+)\s*\(([^)]*)\)`)
	// The surrendering pitcher inside the note.
	pitcherPattern = regexp.MustCompile(`투수\s*([가-힣A-Za-z·]+)`)
	// Inning-half context: 초 means the away side was batting, 말 the home side.
	inningHalfPattern = regexp.MustCompile(`\d+\s*회\s*(초|말)`)
)

// pitcherRoster lists the pitchers who appeared for one side, read from
// that side's pitching box.
func pitcherRoster(doc *goquery.Document, selectors []string) map[string]bool {
	roster := make(map[string]bool)
	tbl := firstTable(doc, selectors)
	if tbl == nil {
		return roster
	}
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() == 0 {
			return
		}
		name := strings.ReplaceAll(normalize.Space(cells.Eq(0).Text()), " ", "")
		if name != "" && !strings.Contains(name, "합계") {
			roster[name] = true
		}
	})
	return roster
}

// homeRunsFromNotes scans the notable-plays rows labeled as home runs and
// attributes each mention to the batting side. Attribution matches the
// mentioned pitcher against each side's roster of pitchers who appeared:
// a pitcher unique to the away roster means the home side homered, and
// vice versa. Ambiguous or failed matches fall back to the inning-half
// context in the note. A mention that resolves neither way is dropped:
// an undercount is acceptable, a guess is not.
func homeRunsFromNotes(doc *goquery.Document) (away, home int, ok bool) {
	tbl := firstTable(doc, notableSelectors)
	if tbl == nil {
		return 0, 0, false
	}

	var noteText string
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		label := normalize.Space(tr.Find("th").First().Text())
		if strings.Contains(label, "홈런") {
			noteText += " " + normalize.Space(tr.Find("td").Text())
		}
	})
	if noteText == "" {
		return 0, 0, true
	}

	awayPitchers := pitcherRoster(doc, awayPitcherSelectors)
	homePitchers := pitcherRoster(doc, homePitcherSelectors)

	for _, m := range hrMentionPattern.FindAllStringSubmatch(noteText, -1) {
		note := m[2]

		if pm := pitcherPattern.FindStringSubmatch(note); pm != nil {
			pitcher := strings.ReplaceAll(pm[1], " ", "")
			inAway := awayPitchers[pitcher]
			inHome := homePitchers[pitcher]
			switch {
			case inAway && !inHome:
				home++ // away pitcher surrendered it
				continue
			case inHome && !inAway:
				away++
				continue
			}
		}

		if hm := inningHalfPattern.FindStringSubmatch(note); hm != nil {
			if hm[1] == "초" {
				away++
			} else {
				home++
			}
			continue
		}
		// Neither roster nor inning context resolved the mention: drop it.
	}
	return away, home, true
}
