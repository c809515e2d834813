package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of clipper.MetadataService.
type MetadataService struct {
	VideoMetadataFn func(ctx context.Context, url string) (*clipper.VideoMetadata, error)
}

func (s *MetadataService) VideoMetadata(ctx context.Context, url string) (*clipper.VideoMetadata, error) {
	return s.VideoMetadataFn(ctx, url)
}

var _ clipper.TranscriptService = (*TranscriptService)(nil)

// TranscriptService is a mock implementation of clipper.TranscriptService.
type TranscriptService struct {
	TranscriptFn func(ctx context.Context, videoID, language string) ([]clipper.TranscriptFragment, error)
}

func (s *TranscriptService) Transcript(ctx context.Context, videoID, language string) ([]clipper.TranscriptFragment, error) {
	return s.TranscriptFn(ctx, videoID, language)
}
