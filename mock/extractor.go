package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of clipper.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(ctx context.Context, html string) (string, error)
}

func (e *ArticleExtractor) ExtractArticle(ctx context.Context, html string) (string, error) {
	return e.ExtractArticleFn(ctx, html)
}

var _ clipper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of clipper.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error)
}

func (e *Extractor) Extract(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
	return e.ExtractFn(ctx, req)
}
