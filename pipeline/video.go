package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/clipper"
	"golang.org/x/sync/errgroup"
)

// VideoPipeline fetches video metadata and the transcript concurrently and
// merges them. Neither sub-fetch can fail the pipeline: missing metadata
// falls back to Unknown sentinels, a missing transcript to a placeholder.
type VideoPipeline struct {
	metadata    clipper.MetadataService
	transcripts clipper.TranscriptService
	logger      *slog.Logger
}

// NewVideoPipeline creates a VideoPipeline. Either service may be nil.
func NewVideoPipeline(metadata clipper.MetadataService, transcripts clipper.TranscriptService, logger *slog.Logger) *VideoPipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VideoPipeline{metadata: metadata, transcripts: transcripts, logger: logger}
}

// Extract implements the video branch of the orchestrator.
func (p *VideoPipeline) Extract(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
	var (
		meta      *clipper.VideoMetadata
		metaErr   error
		videoID   string
		fragments []clipper.TranscriptFragment
		trErr     error
	)

	// Both goroutines report failures through their own variables and
	// return nil, so one never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		meta, metaErr = p.videoMetadata(ctx, req.URL)
		return nil
	})
	g.Go(func() error {
		videoID, fragments, trErr = p.transcript(ctx, req)
		return nil
	})
	_ = g.Wait()

	if metaErr != nil {
		p.logger.Warn("video metadata unavailable", "url", req.URL, "err", metaErr)
	}

	status := clipper.TranscriptOK
	content := clipper.JoinTranscript(fragments)
	switch {
	case trErr != nil:
		status = clipper.TranscriptStatusOf(trErr)
		p.logger.Warn("transcript unavailable", "url", req.URL, "status", status, "err", trErr)
	case content == "":
		status = clipper.TranscriptEmpty
	}
	if status != clipper.TranscriptOK {
		content = status.Placeholder()
	}

	m := meta.WithDefaults()
	metadata := map[string]any{
		"type":              string(clipper.KindVideo),
		"channel":           m.ChannelName,
		"duration_seconds":  orUnknown(int64(m.DurationSeconds)),
		"upload_date":       m.UploadDate,
		"view_count":        orUnknown(m.ViewCount),
		"transcript_status": string(status),
		"video_id":          videoID,
	}
	if m.Description != "" {
		metadata["description"] = m.Description
	}

	return &clipper.ExtractionResult{
		Title:    m.Title,
		Content:  content,
		Kind:     clipper.KindVideo,
		Metadata: metadata,
	}, nil
}

func (p *VideoPipeline) videoMetadata(ctx context.Context, url string) (*clipper.VideoMetadata, error) {
	if p.metadata == nil {
		return nil, clipper.Errorf(clipper.ESUBPROCESS, "no metadata service configured")
	}
	return p.metadata.VideoMetadata(ctx, url)
}

func (p *VideoPipeline) transcript(ctx context.Context, req *clipper.ExtractionRequest) (string, []clipper.TranscriptFragment, error) {
	id, err := clipper.VideoID(req.URL)
	if err != nil {
		return "", nil, clipper.WrapError(clipper.ETRANSCRIPTUNAVAILABLE, err, "no video ID in %s", req.URL)
	}
	if p.transcripts == nil {
		return id, nil, clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "no transcript service configured")
	}
	fragments, err := p.transcripts.Transcript(ctx, id, req.Language)
	return id, fragments, err
}

// orUnknown reports zero counts as Unknown.
func orUnknown(n int64) any {
	if n <= 0 {
		return clipper.Unknown
	}
	return n
}
