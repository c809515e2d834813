package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipper"
)

// Ensure LoggingArticleExtractor implements clipper.ArticleExtractor.
var _ clipper.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with debug logging.
type LoggingArticleExtractor struct {
	next   clipper.ArticleExtractor
	name   string
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor. name
// identifies the wrapped implementation in log lines.
func NewLoggingArticleExtractor(next clipper.ArticleExtractor, name string, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, name: name, logger: logger}
}

// ExtractArticle delegates to the wrapped extractor and logs the result size.
func (e *LoggingArticleExtractor) ExtractArticle(ctx context.Context, html string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract article",
			"extractor", e.name,
			"input_bytes", len(html),
			"length", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticle(ctx, html)
}

// Ensure LoggingExtractor implements clipper.Extractor.
var _ clipper.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps the top-level Extractor.
type LoggingExtractor struct {
	next   clipper.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next clipper.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs kind, size and code.
func (e *LoggingExtractor) Extract(ctx context.Context, req *clipper.ExtractionRequest) (res *clipper.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"duration", time.Since(begin),
		}
		if res != nil {
			attrs = append(attrs, "kind", res.Kind, "length", len(res.Content))
		}
		if err != nil {
			attrs = append(attrs, "code", clipper.ErrorCode(err), "err", err)
			e.logger.Warn("extract", attrs...)
			return
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, req)
}
