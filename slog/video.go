package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipper"
)

// Ensure LoggingMetadataService implements clipper.MetadataService.
var _ clipper.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with debug logging.
type LoggingMetadataService struct {
	next   clipper.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next clipper.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// VideoMetadata delegates to the wrapped service.
func (s *LoggingMetadataService) VideoMetadata(ctx context.Context, url string) (m *clipper.VideoMetadata, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("video metadata",
			"url", url,
			"found", m != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.VideoMetadata(ctx, url)
}

// Ensure LoggingTranscriptService implements clipper.TranscriptService.
var _ clipper.TranscriptService = (*LoggingTranscriptService)(nil)

// LoggingTranscriptService wraps a TranscriptService with debug logging.
type LoggingTranscriptService struct {
	next   clipper.TranscriptService
	logger *slog.Logger
}

// NewLoggingTranscriptService creates a new LoggingTranscriptService.
func NewLoggingTranscriptService(next clipper.TranscriptService, logger *slog.Logger) *LoggingTranscriptService {
	return &LoggingTranscriptService{next: next, logger: logger}
}

// Transcript delegates to the wrapped service and logs the fragment count.
func (s *LoggingTranscriptService) Transcript(ctx context.Context, videoID, language string) (fragments []clipper.TranscriptFragment, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("transcript",
			"video_id", videoID,
			"language", language,
			"fragments", len(fragments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Transcript(ctx, videoID, language)
}
