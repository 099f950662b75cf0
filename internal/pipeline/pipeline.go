package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyunseok-yang/kbo-boxscores/internal/checkpoint"
	"github.com/hyunseok-yang/kbo-boxscores/internal/dataset"
	"github.com/hyunseok-yang/kbo-boxscores/internal/discover"
	"github.com/hyunseok-yang/kbo-boxscores/internal/extract"
	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
	"github.com/hyunseok-yang/kbo-boxscores/internal/logger"
	"github.com/hyunseok-yang/kbo-boxscores/internal/plan"
)

// DefaultPoliteness separates consecutive fetches against the source site.
const DefaultPoliteness = 800 * time.Millisecond

// Readiness markers for the two page kinds.
const (
	listingMarker = "table"
	reviewMarker  = "body"
)

// Session is the navigator capability the pipeline drives: one rendered
// fetch at a time, released via Close on every exit path.
type Session interface {
	Fetch(ctx context.Context, url, marker string) (string, error)
	Close() error
}

// Config wires a run. Open starts the navigator session; it is called
// once, after planning decides the run has work to do.
type Config struct {
	Store       *dataset.Store
	Cache       *dataset.Cache
	Checkpoints *checkpoint.Store
	Open        func(ctx context.Context) (Session, error)
	Log         *logger.Logger
	Plan        plan.Options
	Force       bool
	Politeness  time.Duration
	Now         func() time.Time
}

// Summary reports what one run did.
type Summary struct {
	Dates    int
	Games    int
	Pending  int
	Upserted int
	Dropped  int
}

// Run executes one scrape-and-upsert pass: load the dataset, plan the
// target dates, crawl each date (reusing checkpoints unless forced),
// merge the batch, and rewrite the dataset. Per-event and per-date
// failures are logged and skipped; only session-start failure aborts the
// run, and it does so before the durable dataset is touched.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	log := cfg.Log
	if log == nil {
		log = logger.New(logger.LevelInfo, io.Discard)
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	politeness := cfg.Politeness
	if politeness == 0 {
		politeness = DefaultPoliteness
	}
	counters := logger.NewCounters()

	var summary Summary

	existing, loadDropped, err := cfg.Store.Load()
	if err != nil {
		return summary, fmt.Errorf("loading dataset: %w", err)
	}
	if loadDropped > 0 {
		log.Warn("dropped unparsable rows while loading dataset", logger.Fields{
			"dropped": loadDropped,
		})
	}

	p := plan.Targets(cfg.Plan, existing, now())
	if len(p.Dates) == 0 {
		log.Info("no target dates, nothing to crawl", nil)
		return summary, nil
	}
	log.Info("planned crawl", logger.Fields{
		"dates": len(p.Dates),
		"since": p.Since.Format(game.DayFormat),
		"until": p.Until.Format(game.DayFormat),
	})

	session, err := cfg.Open(ctx)
	if err != nil {
		return summary, fmt.Errorf("opening navigator session: %w", err)
	}
	defer session.Close()

	var batch []game.Record
	for _, day := range p.Dates {
		recs, err := crawlDay(ctx, cfg, session, log, counters, day, politeness)
		if err != nil {
			log.Error("date skipped", logger.Fields{
				"date": day.Format(game.DayFormat),
			}, err)
			continue
		}
		summary.Dates++
		batch = append(batch, recs...)
		log.Info("date crawled", logger.Fields{
			"date":  day.Format(game.DayFormat),
			"games": len(recs),
		})
	}

	for i := range batch {
		if batch[i].Pending() {
			summary.Pending++
		}
	}
	summary.Games = len(batch)

	if len(batch) == 0 {
		log.Info("no new data", logger.Fields{"dates": summary.Dates})
		return summary, nil
	}

	merged, dropped := dataset.Upsert(existing, batch, p.Since, p.Until)
	if err := cfg.Store.Write(merged); err != nil {
		return summary, fmt.Errorf("writing dataset: %w", err)
	}
	if cfg.Cache != nil {
		cfg.Cache.Invalidate()
	}
	summary.Upserted = len(batch)
	summary.Dropped = dropped + loadDropped

	fields := logger.Fields{
		"rows_upserted": summary.Upserted,
		"rows_dropped":  summary.Dropped,
		"rows_pending":  summary.Pending,
		"dataset_rows":  len(merged),
		"out":           cfg.Store.Path(),
	}
	for name, v := range counters.Snapshot() {
		fields[name] = v
	}
	log.Info("run complete", fields)
	return summary, nil
}

// crawlDay produces the records for one calendar date, from the
// checkpoint when available and not forced, else by discovery plus
// per-game detail extraction. A failed game is logged and skipped or
// recorded pending; the date's crawl continues.
func crawlDay(ctx context.Context, cfg Config, session Session, log *logger.Logger,
	counters *logger.Counters, day time.Time, politeness time.Duration) ([]game.Record, error) {

	if !cfg.Force {
		recs, ok, err := cfg.Checkpoints.Load(day)
		if err != nil {
			return nil, err
		}
		// A checkpoint holding a pending result is stale by definition:
		// the recheck window targets the date precisely so that outcome
		// gets a fresh attempt, so the date is re-crawled.
		if ok && !anyPending(recs) {
			counters.Add("checkpoint_hits", 1)
			return recs, nil
		}
	}

	html, err := session.Fetch(ctx, discover.ScheduleURL, listingMarker)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	listings, err := discover.Games(html, day)
	if err != nil {
		return nil, err
	}

	var recs []game.Record
	for _, l := range listings {
		sleep(ctx, politeness)

		rec, err := crawlGame(ctx, session, day, l)
		if err != nil {
			counters.Add("games_skipped", 1)
			log.Error("game skipped", logger.Fields{
				"date":    day.Format(game.DayFormat),
				"game_id": l.GameID,
			}, err)
			continue
		}
		if rec == nil {
			continue
		}
		counters.Add("games_extracted", 1)
		recs = append(recs, *rec)
	}

	if err := cfg.Checkpoints.Save(day, recs); err != nil {
		return nil, fmt.Errorf("saving checkpoint: %w", err)
	}
	sleep(ctx, politeness)
	return recs, nil
}

// crawlGame fetches and extracts one game. Listings without an exposed
// identifier take the composite-key fallback path: a pending record built
// from the matchup tuple, resolved on a later pass.
func crawlGame(ctx context.Context, session Session, day time.Time, l discover.Listing) (*game.Record, error) {
	if l.GameID == "" {
		if l.Away == "" || l.Home == "" || l.Venue == "" {
			return nil, nil
		}
		return &game.Record{
			Date:       day.Format(game.DayFormat),
			Venue:      l.Venue,
			AwayTeam:   l.Away,
			HomeTeam:   l.Home,
			AwayResult: game.ResultPending,
			HomeResult: game.ResultPending,
		}, nil
	}

	html, err := session.Fetch(ctx, discover.ReviewURL(l.GameID), reviewMarker)
	if err != nil {
		return nil, fmt.Errorf("fetching review: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing review: %w", err)
	}

	rec, err := extract.Game(doc, day)
	if err != nil {
		return nil, err
	}
	rec.GameID = l.GameID

	// Minimal validity: a record without both teams and a venue is
	// extraction noise, not a game.
	if rec.AwayTeam == "" || rec.HomeTeam == "" || rec.Venue == "" {
		return nil, nil
	}
	return rec, nil
}

// anyPending reports whether any record still lacks a final outcome.
func anyPending(recs []game.Record) bool {
	for i := range recs {
		if recs[i].Pending() {
			return true
		}
	}
	return false
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
