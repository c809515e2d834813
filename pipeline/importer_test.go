package pipeline_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/bloom"
	"github.com/fwojciec/clipper/mock"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncClips is an in-memory clip store safe for concurrent use.
type syncClips struct {
	mu    sync.Mutex
	clips []*clipper.Clip
}

func (s *syncClips) service() *mock.ClipService {
	return &mock.ClipService{
		CreateClipFn: func(_ context.Context, clip *clipper.Clip) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.clips = append(s.clips, clip)
			return nil
		},
		FindClipsFn: func(_ context.Context, f clipper.ClipFilter) ([]*clipper.Clip, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []*clipper.Clip
			for _, c := range s.clips {
				if f.URL != nil && c.URL != *f.URL {
					continue
				}
				if f.UserID != nil && c.UserID != *f.UserID {
					continue
				}
				out = append(out, c)
			}
			return out, nil
		},
	}
}

func (s *syncClips) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clips)
}

// urlExtractor succeeds for every URL except those containing "fail".
func urlExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
			if strings.Contains(req.URL, "fail") {
				return nil, clipper.Errorf(clipper.EFETCH, "unexpected status 500")
			}
			return &clipper.ExtractionResult{
				Title:    req.URL,
				Content:  "Content for " + req.URL,
				Kind:     clipper.KindWebpage,
				Metadata: map[string]any{"type": "webpage"},
			}, nil
		},
	}
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("saves every URL and reports progress", func(t *testing.T) {
		t.Parallel()

		store := &syncClips{}
		im := pipeline.NewImporter(pipeline.NewSaver(urlExtractor(), store.service()))
		urls := []string{"https://a.example.com/1", "https://b.example.com/2", "https://c.example.com/3"}

		var mu sync.Mutex
		var seen []string
		summary, err := im.Import(context.Background(), "user-1", urls, func(item pipeline.ImportItem) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, item.URL)
		})

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Total)
		assert.Equal(t, 3, summary.Counts[pipeline.ImportSaved])
		assert.ElementsMatch(t, urls, seen)
		assert.Equal(t, 3, store.len())
	})

	t.Run("failed URL does not stop the others", func(t *testing.T) {
		t.Parallel()

		store := &syncClips{}
		im := pipeline.NewImporter(pipeline.NewSaver(urlExtractor(), store.service()))

		var failed []pipeline.ImportItem
		var mu sync.Mutex
		summary, err := im.Import(context.Background(), "user-1",
			[]string{"https://example.com/ok", "https://example.com/fail", "https://example.com/ok2"},
			func(item pipeline.ImportItem) {
				if item.Status == pipeline.ImportFailed {
					mu.Lock()
					failed = append(failed, item)
					mu.Unlock()
				}
			})

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Counts[pipeline.ImportSaved])
		assert.Equal(t, 1, summary.Counts[pipeline.ImportFailed])
		require.Len(t, failed, 1)
		assert.Equal(t, clipper.EFETCH, clipper.ErrorCode(failed[0].Err))
	})

	t.Run("bare fallback is reported as bare", func(t *testing.T) {
		t.Parallel()

		store := &syncClips{}
		saver := pipeline.NewSaver(urlExtractor(), store.service(), pipeline.WithBareFallback(true))
		im := pipeline.NewImporter(saver)

		summary, err := im.Import(context.Background(), "user-1", []string{"https://example.com/fail"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Counts[pipeline.ImportBare])
		assert.Equal(t, 1, store.len())
	})

	t.Run("skips duplicate input URLs", func(t *testing.T) {
		t.Parallel()

		store := &syncClips{}
		im := pipeline.NewImporter(
			pipeline.NewSaver(urlExtractor(), store.service()),
			pipeline.WithURLFilter(bloom.NewFilter(100, 0.001)),
		)

		summary, err := im.Import(context.Background(), "user-1", []string{
			"https://example.com/a",
			"https://example.com/a",
			"https://example.com/b",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Counts[pipeline.ImportSaved])
		assert.Equal(t, 1, summary.Counts[pipeline.ImportDuplicate])
		assert.Equal(t, 2, store.len())
	})

	t.Run("skips URLs the user already saved", func(t *testing.T) {
		t.Parallel()

		store := &syncClips{clips: []*clipper.Clip{
			{ID: "old", UserID: "user-1", URL: "https://example.com/a"},
		}}
		im := pipeline.NewImporter(
			pipeline.NewSaver(urlExtractor(), store.service()),
			pipeline.WithExistingCheck(store.service()),
		)

		var existing *clipper.Clip
		summary, err := im.Import(context.Background(), "user-1",
			[]string{"https://example.com/a", "https://example.com/b"},
			func(item pipeline.ImportItem) {
				if item.Status == pipeline.ImportExisting {
					existing = item.Clip
				}
			})

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Counts[pipeline.ImportExisting])
		assert.Equal(t, 1, summary.Counts[pipeline.ImportSaved])
		require.NotNil(t, existing)
		assert.Equal(t, "old", existing.ID)
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		extractor := &mock.Extractor{
			ExtractFn: func(_ context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				return &clipper.ExtractionResult{Content: "Content", Kind: clipper.KindWebpage}, nil
			},
		}
		store := &syncClips{}
		im := pipeline.NewImporter(pipeline.NewSaver(extractor, store.service()), pipeline.WithConcurrency(2))

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = "https://example.com/" + string(rune('a'+i))
		}

		summary, err := im.Import(context.Background(), "user-1", urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 10, summary.Counts[pipeline.ImportSaved])
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("waits on domain limiter", func(t *testing.T) {
		t.Parallel()

		var domains []string
		var mu sync.Mutex
		limiter := &domainRecorder{fn: func(domain string) {
			mu.Lock()
			defer mu.Unlock()
			domains = append(domains, domain)
		}}
		store := &syncClips{}
		im := pipeline.NewImporter(
			pipeline.NewSaver(urlExtractor(), store.service()),
			pipeline.WithDomainLimiter(limiter),
			pipeline.WithConcurrency(1),
		)

		_, err := im.Import(context.Background(), "user-1", []string{"https://a.com/1", "https://b.org/2"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.com", "b.org"}, domains)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		store := &syncClips{}
		im := pipeline.NewImporter(pipeline.NewSaver(urlExtractor(), store.service()))

		_, err := im.Import(ctx, "user-1", []string{"https://example.com/a"}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, store.len())
	})
}

type domainRecorder struct {
	fn func(domain string)
}

func (d *domainRecorder) Wait(_ context.Context, domain string) error {
	d.fn(domain)
	return nil
}

func TestParseURLList(t *testing.T) {
	t.Parallel()

	input := `
# reading list
https://example.com/a

  https://example.com/b  
#https://example.com/skipped
https://youtu.be/xyz
`

	urls, err := pipeline.ParseURLList(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://youtu.be/xyz",
	}, urls)
}
