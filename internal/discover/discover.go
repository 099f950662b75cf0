package discover

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
)

const (
	// ScheduleURL lists the day's games with a review link per finished game.
	ScheduleURL = "https://www.koreabaseball.com/Schedule/Schedule.aspx"

	reviewURLFormat = "https://www.koreabaseball.com/GameCenter/Main.aspx?gameId=%s&section=REVIEW"
)

// ReviewURL is the box-score review page for one game.
func ReviewURL(gameID string) string {
	return fmt.Sprintf(reviewURLFormat, gameID)
}

// skipKeywords mark rows for games that produced no box score:
// scheduled, cancelled, rain delay, no-game.
var skipKeywords = []string{"예정", "취소", "우천", "노게임"}

var (
	gameIDPattern  = regexp.MustCompile(`gameId[=:'"]?(\d{8}[0-9A-Za-z]*)`)
	matchupPattern = regexp.MustCompile(`(\S+)\s*(?:\d+\s*)?vs\s*(?:\d+\s*)?(\S+)`)
)

// Listing identifies one reviewable game on the schedule page. GameID is
// set when the source exposes an identifier; otherwise the matchup tuple
// carries enough for the composite-key fallback path.
type Listing struct {
	GameID string
	Away   string
	Home   string
	Venue  string
	Status string
}

// Games parses the rendered schedule listing and returns the reviewable
// games for the given date. Rows whose status text matches a skip keyword
// are excluded; remaining rows must carry a review link. Output is sorted
// and deduplicated.
func Games(html string, day time.Time) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}

	target := day.Format(game.CompactFormat)
	var listings []Listing

	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		rowText := normalize.Space(tr.Text())
		for _, kw := range skipKeywords {
			if strings.Contains(rowText, kw) {
				return
			}
		}

		review := tr.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
			return strings.Contains(a.Text(), "리뷰")
		})
		if review.Length() == 0 {
			return
		}

		// The matchup-tuple fallback is reserved for rows that expose no
		// identifier at all. A harvested id with another date's prefix
		// means the row belongs to a different day and is dropped.
		harvested := false
		review.Each(func(_ int, a *goquery.Selection) {
			gid := gameIDFrom(a, tr)
			if gid == "" {
				return
			}
			harvested = true
			if !strings.HasPrefix(gid, target) {
				return
			}
			listings = append(listings, Listing{GameID: gid})
		})
		if !harvested {
			if l, ok := fallbackListing(tr); ok {
				listings = append(listings, l)
			}
		}
	})

	sort.Slice(listings, func(i, j int) bool {
		if listings[i].GameID != listings[j].GameID {
			return listings[i].GameID < listings[j].GameID
		}
		return listings[i].Away+listings[i].Home < listings[j].Away+listings[j].Home
	})

	seen := make(map[string]bool)
	unique := listings[:0]
	for _, l := range listings {
		key := l.GameID + "|" + l.Away + "|" + l.Home
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, l)
	}
	return unique, nil
}

// gameIDFrom harvests the game identifier from the review anchor's href or
// onclick, falling back to the enclosing cell's and row's onclick payloads.
func gameIDFrom(a, tr *goquery.Selection) string {
	href, _ := a.Attr("href")
	onclick, _ := a.Attr("onclick")
	if m := gameIDPattern.FindStringSubmatch(href + " " + onclick); m != nil {
		return m[1]
	}

	tdClick, _ := a.Closest("td").Attr("onclick")
	trClick, _ := tr.Attr("onclick")
	if m := gameIDPattern.FindStringSubmatch(tdClick + " " + trClick); m != nil {
		return m[1]
	}
	return ""
}

// fallbackListing builds a minimal matchup tuple for rows that carry a
// review link but expose no game identifier. The venue is the first cell
// naming a known ballpark; cells holding times, matchups, or the review
// link itself never qualify.
func fallbackListing(tr *goquery.Selection) (Listing, bool) {
	var l Listing
	tds := tr.Find("td")
	tds.Each(func(_ int, td *goquery.Selection) {
		text := normalize.Space(td.Text())
		if l.Away == "" {
			if m := matchupPattern.FindStringSubmatch(text); m != nil {
				l.Away = normalize.Team(m[1])
				l.Home = normalize.Team(m[2])
				return
			}
		}
		if l.Venue == "" && normalize.KnownVenue(text) {
			l.Venue = normalize.CleanVenue(text)
		}
	})
	if l.Away == "" || l.Home == "" {
		return Listing{}, false
	}
	return l, true
}
