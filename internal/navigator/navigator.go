package navigator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/chromedp"
)

const (
	// DefaultWaitTimeout bounds the readiness wait for a single fetch.
	DefaultWaitTimeout = 12 * time.Second
	// DefaultSettle is the short delay after the readiness marker appears,
	// giving late scripts a chance to fill the tables.
	DefaultSettle = 1 * time.Second
	// DefaultStartAttempts bounds session-start retries; each attempt gets
	// a fresh browser profile.
	DefaultStartAttempts = 3
	// DefaultFetchRetries bounds per-fetch retries on readiness timeouts.
	DefaultFetchRetries = 2
)

var (
	// ErrNotReady reports a page that never reached its readiness marker
	// within the wait timeout. Transient; callers skip and continue.
	ErrNotReady = errors.New("page never became ready")
	// ErrSessionStart reports a browser session that could not be started
	// after bounded retries. Fatal; the run aborts.
	ErrSessionStart = errors.New("browser session could not be started")
)

// Config tunes a Session. The zero value uses the defaults above.
type Config struct {
	WaitTimeout   time.Duration
	Settle        time.Duration
	StartAttempts int
	FetchRetries  int
}

func (c Config) withDefaults() Config {
	if c.WaitTimeout == 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}
	if c.Settle == 0 {
		c.Settle = DefaultSettle
	}
	if c.StartAttempts == 0 {
		c.StartAttempts = DefaultStartAttempts
	}
	if c.FetchRetries == 0 {
		c.FetchRetries = DefaultFetchRetries
	}
	return c
}

// Session is an exclusive headless-browser session. One navigation runs at
// a time; the temporary profile directory lives exactly as long as the
// session and is removed on Close.
type Session struct {
	cfg         Config
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	profileDir  string
}

// Start launches a headless browser. Start failures are retried with a
// fresh profile each attempt; the discarded profile is cleaned up between
// attempts. Exhausting the attempts returns ErrSessionStart.
func Start(ctx context.Context, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.StartAttempts; attempt++ {
		s, err := startOnce(ctx, cfg)
		if err == nil {
			return s, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrSessionStart, cfg.StartAttempts, lastErr)
}

func startOnce(ctx context.Context, cfg Config) (*Session, error) {
	profileDir, err := os.MkdirTemp("", "kbo-crawl-profile-*")
	if err != nil {
		return nil, fmt.Errorf("creating profile dir: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserDataDir(profileDir),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Run with no actions forces the browser to actually launch so a bad
	// environment fails here, not on the first fetch.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		os.RemoveAll(profileDir)
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Session{
		cfg:         cfg,
		ctx:         browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		profileDir:  profileDir,
	}, nil
}

// Fetch navigates to url, waits for the readiness marker (a CSS selector)
// within the bounded timeout plus the settle delay, and returns the
// rendered HTML. Readiness timeouts are retried a bounded number of times
// before surfacing ErrNotReady.
func (s *Session) Fetch(ctx context.Context, url, marker string) (string, error) {
	var html string

	op := func() error {
		runCtx, cancel := context.WithTimeout(s.ctx, s.cfg.WaitTimeout+s.cfg.Settle)
		defer cancel()

		err := chromedp.Run(runCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady(marker, chromedp.ByQuery),
			chromedp.Sleep(s.cfg.Settle),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrNotReady, url)
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("navigating to %s: %w", url, err))
		}
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), uint64(s.cfg.FetchRetries)),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return "", err
	}
	return html, nil
}

// Close tears the session down and removes the temporary profile. Safe to
// call on every exit path.
func (s *Session) Close() error {
	s.cancelCtx()
	s.cancelAlloc()
	if s.profileDir != "" {
		return os.RemoveAll(s.profileDir)
	}
	return nil
}
