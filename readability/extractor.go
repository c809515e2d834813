// Package readability extracts article text with go-readability.
package readability

import (
	"context"
	"strings"

	"github.com/fwojciec/clipper"
	"github.com/go-shiori/go-readability"
)

// Ensure ArticleExtractor implements clipper.ArticleExtractor at compile time.
var _ clipper.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor wraps go-readability. The readable HTML is converted to
// Markdown when a Converter is set, otherwise its text content is returned.
type ArticleExtractor struct {
	converter clipper.Converter
}

// NewArticleExtractor creates a new ArticleExtractor. conv may be nil.
func NewArticleExtractor(conv clipper.Converter) *ArticleExtractor {
	return &ArticleExtractor{converter: conv}
}

// ExtractArticle processes raw HTML and returns the main content.
func (e *ArticleExtractor) ExtractArticle(ctx context.Context, rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", clipper.Errorf(clipper.EINVALID, "empty HTML input")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", clipper.WrapError(clipper.ECONTENT, err, "readability extraction failed")
	}

	if e.converter == nil || strings.TrimSpace(article.Content) == "" {
		return clipper.NormalizeWhitespace(article.TextContent), nil
	}

	md, err := e.converter.Convert(article.Content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
