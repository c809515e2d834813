// Package trafilatura extracts article text in-process with go-trafilatura.
package trafilatura

import (
	"bytes"
	"context"
	"strings"

	"github.com/fwojciec/clipper"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure ArticleExtractor implements clipper.ArticleExtractor at compile time.
var _ clipper.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor wraps go-trafilatura to extract the main content of a
// page. When a Converter is set the content is returned as Markdown,
// otherwise as plain text.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", clipper.WrapError(clipper.ECONTENT, err, "trafilatura extraction failed")
	}

	if e.converter == nil || result.ContentNode == nil {
		return strings.TrimSpace(result.ContentText), nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return "", clipper.WrapError(clipper.EINTERNAL, err, "rendering content node")
	}
	md, err := e.converter.Convert(contentHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
