package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hyunseok-yang/kbo-boxscores/internal/dataset"
	"github.com/hyunseok-yang/kbo-boxscores/internal/normalize"
	"github.com/hyunseok-yang/kbo-boxscores/internal/stats"
	"github.com/spf13/cobra"
)

var (
	flagSummaryTeam  string
	flagSummaryVenue string
	flagSummaryOut   string
)

// newSummaryCmd creates the summary subcommand: a read-only view over the
// durable dataset, the same aggregate card the analytics side serves.
func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a team's aggregate card from the dataset",
		RunE:  runSummary,
	}

	cmd.Flags().StringVar(&flagSummaryTeam, "team", "", "Team name or canonical code, e.g. LG (required)")
	cmd.Flags().StringVar(&flagSummaryVenue, "venue", "", "Restrict to one venue, e.g. 잠실")
	cmd.Flags().StringVar(&flagSummaryOut, "out", defaultOut, "Durable dataset file")

	cmd.MarkFlagRequired("team")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	store, err := dataset.NewStore(flagSummaryOut)
	if err != nil {
		return fmt.Errorf("initializing dataset store: %w", err)
	}

	records, err := dataset.NewCache(store).Records()
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no dataset at %s", store.Path())
	}

	team := normalize.Team(flagSummaryTeam)
	venue := normalize.Venue(flagSummaryVenue)

	var card stats.Summary
	if venue != "" {
		card = stats.TeamAtVenue(records, team, venue)
	} else {
		card = stats.Team(records, team)
	}

	writeSummary(os.Stdout, team, venue, card)
	return nil
}

// writeSummary prints one aggregate card as human-readable text.
func writeSummary(w io.Writer, team, venue string, card stats.Summary) {
	if venue != "" {
		fmt.Fprintf(w, "%s at %s:\n", team, venue)
	} else {
		fmt.Fprintf(w, "%s:\n", team)
	}
	fmt.Fprintf(w, "  Games:        %d (%d-%d-%d)\n", card.Games, card.Wins, card.Losses, card.Draws)
	fmt.Fprintf(w, "  Runs:         %d for / %d against\n", card.RunsFor, card.RunsAgainst)
	fmt.Fprintf(w, "  Hits:         %d\n", card.Hits)
	fmt.Fprintf(w, "  Home runs:    %d\n", card.HomeRuns)
	fmt.Fprintf(w, "  At-bats:      %d\n", card.AtBats)
	fmt.Fprintf(w, "  Batting avg:  %.4f\n", card.Avg)
}
