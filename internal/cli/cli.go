package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyunseok-yang/kbo-boxscores/internal/checkpoint"
	"github.com/hyunseok-yang/kbo-boxscores/internal/dataset"
	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
	"github.com/hyunseok-yang/kbo-boxscores/internal/logger"
	"github.com/hyunseok-yang/kbo-boxscores/internal/navigator"
	"github.com/hyunseok-yang/kbo-boxscores/internal/pipeline"
	"github.com/hyunseok-yang/kbo-boxscores/internal/plan"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	defaultOut     = "data/kbo_latest.csv"
	defaultDataDir = "~/.local/share/kbo-boxscores"
)

var (
	flagSince   string
	flagUntil   string
	flagOut     string
	flagDataDir string
	flagForce   bool
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kbo-crawl",
		Short: "Crawl KBO box scores into the analytics dataset",
		Long: `Crawls finished KBO games from the schedule and review pages and merges
their box scores into a durable CSV dataset. Runs are incremental: the
date range resumes from the prior dataset state, per-date checkpoints
skip already-extracted days, and pending games from the recent past are
rechecked until their outcome is final.`,
		RunE: runCrawl,
	}

	cmd.Flags().StringVar(&flagSince, "since", "", "First date to crawl, YYYY-MM-DD or YYYYMMDD (default: resume after last stored date)")
	cmd.Flags().StringVar(&flagUntil, "until", "", "Last date to crawl (default: yesterday)")
	cmd.Flags().StringVar(&flagOut, "out", defaultOut, "Durable dataset file")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", defaultDataDir, "Directory for per-date checkpoints")
	cmd.Flags().BoolVar(&flagForce, "force", false, "Re-crawl dates even when a checkpoint exists")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newSummaryCmd())

	return cmd
}

// runCrawl is the main command logic
func runCrawl(cmd *cobra.Command, args []string) error {
	opts, err := planOptions()
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)

	store, err := dataset.NewStore(flagOut)
	if err != nil {
		return fmt.Errorf("initializing dataset store: %w", err)
	}
	checkpoints, err := checkpoint.New(filepath.Join(flagDataDir, "checkpoints"))
	if err != nil {
		return fmt.Errorf("initializing checkpoints: %w", err)
	}

	cfg := pipeline.Config{
		Store:       store,
		Cache:       dataset.NewCache(store),
		Checkpoints: checkpoints,
		Log:         log,
		Plan:        opts,
		Force:       flagForce,
		Open: func(ctx context.Context) (pipeline.Session, error) {
			return navigator.Start(ctx, navigator.Config{})
		},
	}

	summary, err := pipeline.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if summary.Upserted == 0 {
		fmt.Println("No new data.")
	} else {
		fmt.Printf("Upserted %d rows into %s (%d pending, %d dropped)\n",
			summary.Upserted, store.Path(), summary.Pending, summary.Dropped)
	}
	return nil
}

// planOptions converts the date flags into planner options.
func planOptions() (plan.Options, error) {
	var opts plan.Options
	if flagSince != "" {
		since, err := game.ParseDay(flagSince)
		if err != nil {
			return opts, fmt.Errorf("invalid --since %q: %w", flagSince, err)
		}
		opts.Since = since
	}
	if flagUntil != "" {
		until, err := game.ParseDay(flagUntil)
		if err != nil {
			return opts, fmt.Errorf("invalid --until %q: %w", flagUntil, err)
		}
		opts.Until = until
	}
	if !opts.Since.IsZero() && !opts.Until.IsZero() && opts.Since.After(opts.Until) {
		return opts, fmt.Errorf("--since %s is after --until %s", flagSince, flagUntil)
	}
	return opts, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
