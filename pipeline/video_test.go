package pipeline_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/mock"
	"github.com/fwojciec/clipper/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func metadataService(meta *clipper.VideoMetadata, err error) *mock.MetadataService {
	return &mock.MetadataService{
		VideoMetadataFn: func(context.Context, string) (*clipper.VideoMetadata, error) { return meta, err },
	}
}

func transcriptService(fragments []clipper.TranscriptFragment, err error) *mock.TranscriptService {
	return &mock.TranscriptService{
		TranscriptFn: func(context.Context, string, string) ([]clipper.TranscriptFragment, error) {
			return fragments, err
		},
	}
}

func TestVideoPipeline_Extract(t *testing.T) {
	t.Parallel()

	meta := &clipper.VideoMetadata{
		Title:           "Test Video",
		Description:     "A description.",
		ChannelName:     "Test Channel",
		DurationSeconds: 212,
		UploadDate:      "2024-01-15",
		ViewCount:       1000,
	}

	t.Run("merges metadata and transcript", func(t *testing.T) {
		t.Parallel()

		var gotID, gotLang string
		transcripts := &mock.TranscriptService{
			TranscriptFn: func(_ context.Context, videoID, language string) ([]clipper.TranscriptFragment, error) {
				gotID, gotLang = videoID, language
				return []clipper.TranscriptFragment{{Text: "Hello"}, {Text: " world "}}, nil
			},
		}
		p := pipeline.NewVideoPipeline(metadataService(meta, nil), transcripts, nil)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL, Language: "de"})

		require.NoError(t, err)
		assert.Equal(t, "dQw4w9WgXcQ", gotID)
		assert.Equal(t, "de", gotLang)
		assert.Equal(t, "Test Video", res.Title)
		assert.Equal(t, "Hello world", res.Content)
		assert.Equal(t, clipper.KindVideo, res.Kind)
		assert.Equal(t, map[string]any{
			"type":              "video",
			"channel":           "Test Channel",
			"duration_seconds":  int64(212),
			"upload_date":       "2024-01-15",
			"view_count":        int64(1000),
			"transcript_status": "ok",
			"video_id":          "dQw4w9WgXcQ",
			"description":       "A description.",
		}, res.Metadata)
	})

	t.Run("disabled transcript yields placeholder", func(t *testing.T) {
		t.Parallel()

		p := pipeline.NewVideoPipeline(
			metadataService(&clipper.VideoMetadata{Title: "Test Video"}, nil),
			transcriptService(nil, clipper.Errorf(clipper.ETRANSCRIPTDISABLED, "captions disabled")),
			nil,
		)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, "Test Video", res.Title)
		assert.Equal(t, "[Transcript is disabled by the video creator.]", res.Content)
		assert.Equal(t, "disabled", res.Metadata["transcript_status"])
	})

	t.Run("transcript failures map to placeholders", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			err    error
			status clipper.TranscriptStatus
		}{
			{"unavailable", clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "no tracks"), clipper.TranscriptUnavailable},
			{"fetch failed", clipper.Errorf(clipper.EFETCH, "timeout"), clipper.TranscriptFetchFailed},
			{"disabled message", errors.New("Subtitles are disabled for this video"), clipper.TranscriptDisabled},
			{"unknown error", errors.New("boom"), clipper.TranscriptUnavailable},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				p := pipeline.NewVideoPipeline(metadataService(meta, nil), transcriptService(nil, tt.err), nil)

				res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

				require.NoError(t, err)
				assert.Equal(t, tt.status.Placeholder(), res.Content)
				assert.Equal(t, string(tt.status), res.Metadata["transcript_status"])
			})
		}
	})

	t.Run("empty transcript yields placeholder", func(t *testing.T) {
		t.Parallel()

		p := pipeline.NewVideoPipeline(
			metadataService(meta, nil),
			transcriptService([]clipper.TranscriptFragment{{Text: "  "}}, nil),
			nil,
		)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, clipper.TranscriptEmptyPlaceholder, res.Content)
		assert.Equal(t, "empty", res.Metadata["transcript_status"])
	})

	t.Run("missing metadata falls back to unknown", func(t *testing.T) {
		t.Parallel()

		p := pipeline.NewVideoPipeline(
			metadataService(nil, clipper.Errorf(clipper.ESUBPROCESS, "yt-dlp: not found")),
			transcriptService([]clipper.TranscriptFragment{{Text: "Transcript text"}}, nil),
			nil,
		)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, clipper.UnknownTitle, res.Title)
		assert.Equal(t, "Transcript text", res.Content)
		assert.Equal(t, clipper.UnknownChannel, res.Metadata["channel"])
		assert.Equal(t, clipper.Unknown, res.Metadata["duration_seconds"])
		assert.Equal(t, clipper.UnknownDate, res.Metadata["upload_date"])
		assert.Equal(t, clipper.Unknown, res.Metadata["view_count"])
		assert.NotContains(t, res.Metadata, "description")
	})

	t.Run("nil services still produce a result", func(t *testing.T) {
		t.Parallel()

		p := pipeline.NewVideoPipeline(nil, nil, nil)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, clipper.UnknownTitle, res.Title)
		assert.Equal(t, clipper.TranscriptUnavailablePlaceholder, res.Content)
	})

	t.Run("url without video id skips transcript", func(t *testing.T) {
		t.Parallel()

		called := false
		transcripts := &mock.TranscriptService{
			TranscriptFn: func(context.Context, string, string) ([]clipper.TranscriptFragment, error) {
				called = true
				return nil, nil
			},
		}
		p := pipeline.NewVideoPipeline(metadataService(meta, nil), transcripts, nil)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: "https://vimeo.com/76979871"})

		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, clipper.TranscriptUnavailablePlaceholder, res.Content)
		assert.Equal(t, "Test Video", res.Title)
	})

	t.Run("fetches metadata and transcript concurrently", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int32
		enter := func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			inFlight.Add(-1)
		}

		p := pipeline.NewVideoPipeline(
			&mock.MetadataService{
				VideoMetadataFn: func(context.Context, string) (*clipper.VideoMetadata, error) {
					enter()
					return meta, nil
				},
			},
			&mock.TranscriptService{
				TranscriptFn: func(context.Context, string, string) ([]clipper.TranscriptFragment, error) {
					enter()
					return []clipper.TranscriptFragment{{Text: "text"}}, nil
				},
			},
			nil,
		)

		_, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, int32(2), peak.Load())
	})

	t.Run("metadata failure does not cancel transcript", func(t *testing.T) {
		t.Parallel()

		p := pipeline.NewVideoPipeline(
			metadataService(nil, errors.New("boom")),
			&mock.TranscriptService{
				TranscriptFn: func(ctx context.Context, _, _ string) ([]clipper.TranscriptFragment, error) {
					time.Sleep(20 * time.Millisecond)
					if err := ctx.Err(); err != nil {
						return nil, err
					}
					return []clipper.TranscriptFragment{{Text: "still here"}}, nil
				},
			},
			nil,
		)

		res, err := p.Extract(context.Background(), &clipper.ExtractionRequest{URL: testVideoURL})

		require.NoError(t, err)
		assert.Equal(t, "still here", res.Content)
	})
}
