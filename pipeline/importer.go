package pipeline

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/clipper"
	"golang.org/x/sync/errgroup"
)

// DefaultImportConcurrency is the number of URLs extracted at once.
const DefaultImportConcurrency = 4

// ImportStatus is the outcome of importing one URL.
type ImportStatus string

// Import outcomes.
const (
	ImportSaved     ImportStatus = "saved"
	ImportBare      ImportStatus = "bare"
	ImportDuplicate ImportStatus = "duplicate"
	ImportExisting  ImportStatus = "existing"
	ImportFailed    ImportStatus = "failed"
)

// ImportItem reports the outcome for one URL.
type ImportItem struct {
	URL    string
	Status ImportStatus
	Clip   *clipper.Clip
	Err    error
}

// ImportSummary counts outcomes of an import.
type ImportSummary struct {
	Total  int
	Counts map[ImportStatus]int
}

// Importer saves many URLs with bounded concurrency. Duplicate input URLs
// are skipped, requests are rate limited per domain, and a failed URL does
// not stop the others.
type Importer struct {
	saver       *Saver
	clips       clipper.ClipService
	limiter     clipper.DomainLimiter
	seen        clipper.URLFilter
	concurrency int
	logger      *slog.Logger
}

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithConcurrency sets how many URLs are extracted at once.
func WithConcurrency(n int) ImporterOption {
	return func(im *Importer) {
		if n > 0 {
			im.concurrency = n
		}
	}
}

// WithDomainLimiter rate-limits requests per domain.
func WithDomainLimiter(l clipper.DomainLimiter) ImporterOption {
	return func(im *Importer) {
		im.limiter = l
	}
}

// WithURLFilter skips URLs the filter has already seen.
func WithURLFilter(f clipper.URLFilter) ImporterOption {
	return func(im *Importer) {
		im.seen = f
	}
}

// WithExistingCheck skips URLs the user has already saved.
func WithExistingCheck(clips clipper.ClipService) ImporterOption {
	return func(im *Importer) {
		im.clips = clips
	}
}

// WithImporterLogger sets the logger.
func WithImporterLogger(logger *slog.Logger) ImporterOption {
	return func(im *Importer) {
		im.logger = logger
	}
}

// NewImporter creates an Importer that stores clips through saver.
func NewImporter(saver *Saver, opts ...ImporterOption) *Importer {
	im := &Importer{
		saver:       saver,
		concurrency: DefaultImportConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import saves urls for userID. progress, if non-nil, is called once per
// URL; calls are serialized. The returned error is non-nil only if ctx is
// done before every URL was processed.
func (im *Importer) Import(ctx context.Context, userID string, urls []string, progress func(ImportItem)) (*ImportSummary, error) {
	summary := &ImportSummary{Total: len(urls), Counts: make(map[ImportStatus]int)}

	var mu sync.Mutex
	report := func(item ImportItem) {
		mu.Lock()
		defer mu.Unlock()
		summary.Counts[item.Status]++
		if progress != nil {
			progress(item)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	for _, u := range urls {
		if im.seen != nil && im.seen.TestAndAdd(u) {
			report(ImportItem{URL: u, Status: ImportDuplicate})
			continue
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			item, err := im.importOne(gctx, userID, u)
			if err != nil {
				return err
			}
			report(item)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// importOne returns an error only when ctx is done; everything else is
// reported in the item.
func (im *Importer) importOne(ctx context.Context, userID, rawURL string) (ImportItem, error) {
	item := ImportItem{URL: rawURL}

	if im.clips != nil {
		existing, err := im.clips.FindClips(ctx, clipper.ClipFilter{UserID: &userID, URL: &rawURL, Limit: 1})
		if err == nil && len(existing) > 0 {
			item.Status = ImportExisting
			item.Clip = existing[0]
			return item, nil
		}
	}

	if im.limiter != nil {
		if err := im.limiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return item, err
		}
	}

	clip, err := im.saver.Save(ctx, userID, &clipper.ExtractionRequest{URL: rawURL})
	if err != nil {
		if ctx.Err() != nil {
			return item, ctx.Err()
		}
		im.logger.Warn("import failed", "url", rawURL, "code", clipper.ErrorCode(err), "err", err)
		item.Status = ImportFailed
		item.Err = err
		return item, nil
	}

	item.Clip = clip
	item.Status = ImportSaved
	if failed, _ := clip.Metadata["extraction_failed"].(bool); failed {
		item.Status = ImportBare
	}
	return item, nil
}

// ParseURLList reads one URL per line. Blank lines and lines starting with
// # are ignored.
func ParseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
