package stats

import (
	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

// Summary is one team's aggregate line over a set of games. Pending games
// are excluded from every count.
type Summary struct {
	Games       int
	Wins        int
	Losses      int
	Draws       int
	RunsFor     int
	RunsAgainst int
	Hits        int
	HomeRuns    int
	AtBats      int
	Avg         float64
}

// Team aggregates every appearance of team, home or away.
func Team(records []game.Record, team string) Summary {
	return accumulate(records, team, "")
}

// TeamAtVenue aggregates team's appearances at one canonical venue.
func TeamAtVenue(records []game.Record, team, venue string) Summary {
	return accumulate(records, team, venue)
}

func accumulate(records []game.Record, team, venue string) Summary {
	var s Summary
	for i := range records {
		r := &records[i]
		if venue != "" && r.Venue != venue {
			continue
		}
		home := r.HomeTeam == team
		away := r.AwayTeam == team
		if !home && !away {
			continue
		}
		if r.Pending() {
			continue
		}

		var result game.Result
		if home {
			result = r.HomeResult
			s.RunsFor += r.HomeScore
			s.RunsAgainst += r.AwayScore
			s.Hits += r.HomeHits
			s.HomeRuns += r.HomeHR
			s.AtBats += r.HomeAB
		} else {
			result = r.AwayResult
			s.RunsFor += r.AwayScore
			s.RunsAgainst += r.HomeScore
			s.Hits += r.AwayHits
			s.HomeRuns += r.AwayHR
			s.AtBats += r.AwayAB
		}

		s.Games++
		switch result {
		case game.ResultWin:
			s.Wins++
		case game.ResultLoss:
			s.Losses++
		case game.ResultDraw:
			s.Draws++
		}
	}
	s.Avg = game.Average(s.Hits, s.AtBats)
	return s
}
