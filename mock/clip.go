package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.ClipService = (*ClipService)(nil)

// ClipService is a mock implementation of clipper.ClipService.
type ClipService struct {
	CreateClipFn   func(ctx context.Context, clip *clipper.Clip) error
	FindClipByIDFn func(ctx context.Context, id string) (*clipper.Clip, error)
	FindClipsFn    func(ctx context.Context, filter clipper.ClipFilter) ([]*clipper.Clip, error)
	DeleteClipFn   func(ctx context.Context, id string) error
}

func (s *ClipService) CreateClip(ctx context.Context, clip *clipper.Clip) error {
	return s.CreateClipFn(ctx, clip)
}

func (s *ClipService) FindClipByID(ctx context.Context, id string) (*clipper.Clip, error) {
	return s.FindClipByIDFn(ctx, id)
}

func (s *ClipService) FindClips(ctx context.Context, filter clipper.ClipFilter) ([]*clipper.Clip, error) {
	return s.FindClipsFn(ctx, filter)
}

func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	return s.DeleteClipFn(ctx, id)
}

var _ clipper.ClipWriter = (*ClipWriter)(nil)

// ClipWriter is a mock implementation of clipper.ClipWriter.
type ClipWriter struct {
	WriteClipFn func(ctx context.Context, clip *clipper.Clip) error
}

func (w *ClipWriter) WriteClip(ctx context.Context, clip *clipper.Clip) error {
	return w.WriteClipFn(ctx, clip)
}
