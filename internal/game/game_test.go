package game

import (
	"testing"
	"time"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name     string
		hits     int
		atBats   int
		expected float64
	}{
		{"seven for thirty", 7, 30, 0.2333},
		{"ten for thirty-three", 10, 33, 0.3030},
		{"zero at-bats", 4, 0, 0},
		{"perfect", 3, 3, 1.0},
		{"zero hits", 0, 28, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.hits, tt.atBats); got != tt.expected {
				t.Errorf("Average(%d, %d) = %v, expected %v", tt.hits, tt.atBats, got, tt.expected)
			}
		})
	}
}

func TestSetResults(t *testing.T) {
	tests := []struct {
		name         string
		awayScore    int
		homeScore    int
		expectedAway Result
		expectedHome Result
	}{
		{"away wins", 3, 1, ResultWin, ResultLoss},
		{"home wins", 3, 5, ResultLoss, ResultWin},
		{"draw", 2, 2, ResultDraw, ResultDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{AwayScore: tt.awayScore, HomeScore: tt.homeScore}
			r.SetResults()
			if r.AwayResult != tt.expectedAway || r.HomeResult != tt.expectedHome {
				t.Errorf("SetResults() = %s/%s, expected %s/%s",
					r.AwayResult, r.HomeResult, tt.expectedAway, tt.expectedHome)
			}
		})
	}
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		in       string
		expected Result
	}{
		{"win", ResultWin},
		{"loss", ResultLoss},
		{"draw", ResultDraw},
		{"pending", ResultPending},
		{"승", ResultWin},
		{"패", ResultLoss},
		{"무", ResultDraw},
		{"예정", ResultPending},
		{"garbage", ResultPending},
		{"", ResultPending},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseResult(tt.in); got != tt.expected {
				t.Errorf("ParseResult(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestKey(t *testing.T) {
	a := Record{Date: "2025-03-22", AwayTeam: "LG", HomeTeam: "두산"}
	b := Record{Date: "2025-03-22", AwayTeam: "LG", HomeTeam: "두산", Venue: "잠실"}
	c := Record{Date: "2025-03-23", AwayTeam: "LG", HomeTeam: "두산"}

	if a.Key() != b.Key() {
		t.Errorf("records differing only in venue should share a key")
	}
	if a.Key() == c.Key() {
		t.Errorf("records on different dates must not share a key")
	}
}

func TestParseDay(t *testing.T) {
	want := time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-03-22", "20250322"} {
		got, err := ParseDay(in)
		if err != nil {
			t.Fatalf("ParseDay(%q) error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDay(%q) = %v, expected %v", in, got, want)
		}
	}

	if _, err := ParseDay("not-a-date"); err == nil {
		t.Error("ParseDay should fail on garbage input")
	}
}
