// Package rod provides a clipper.Fetcher backed by headless Chrome, for
// pages that only render their content with JavaScript.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements clipper.Fetcher at compile time.
var _ clipper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool      *browserPool
	timeout   time.Duration
	maxPages  int64
	userAgent string
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is restarted.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
// Navigation and render failures are returned as EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", clipper.Errorf(clipper.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", clipper.WrapError(clipper.EFETCH, err, "fetch %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser := f.pool.acquire()
	if browser == nil {
		return "", clipper.Errorf(clipper.EINVALID, "fetcher is closed")
	}
	defer f.pool.release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", clipper.WrapError(clipper.EFETCH, err, "opening page for %s", url)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", clipper.WrapError(clipper.EFETCH, err, "setting user agent")
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", clipper.WrapError(clipper.EFETCH, err, "navigating to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", clipper.WrapError(clipper.EFETCH, err, "loading %s", url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", clipper.WrapError(clipper.EFETCH, err, "reading HTML of %s", url)
	}
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher, or 0 once the
// fetcher is closed.
func (f *Fetcher) LauncherPID() int {
	return f.pool.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.pool.shutdown()
}
