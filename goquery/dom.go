// Package goquery implements in-process HTML text extraction using
// PuerkitoBio/goquery.
package goquery

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipper"
	"golang.org/x/net/html"
)

// ContentSelectors are tried in order; the match with the longest text wins.
var ContentSelectors = []string{
	"main",
	"article",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	"#content",
	".main-content",
}

// NoiseSelector matches page chrome stripped before text is collected.
const NoiseSelector = "script, style, nav, header, footer, aside"

// MinContainerLength is the number of characters a content container needs
// before it is preferred over the whole body.
const MinContainerLength = 100

// Ensure DOMExtractor implements clipper.ArticleExtractor at compile time.
var _ clipper.ArticleExtractor = (*DOMExtractor)(nil)

// DOMExtractor is a heuristic text extractor: it strips page chrome, picks
// the content selector whose matches hold the most text, and falls back to
// the body.
type DOMExtractor struct{}

// NewDOMExtractor creates a DOMExtractor.
func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{}
}

// ExtractArticle returns whitespace-normalized text from htmlContent.
// Returns ECONTENT if no text remains.
func (e *DOMExtractor) ExtractArticle(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", clipper.WrapError(clipper.EINTERNAL, err, "failed to parse HTML")
	}

	doc.Find(NoiseSelector).Remove()

	var best string
	var bestLen int
	for _, selector := range ContentSelectors {
		matches := doc.Find(selector)
		text := clipper.NormalizeWhitespace(nodeText(outermost(matches)))
		if n := utf8.RuneCountInString(text); n > bestLen {
			best, bestLen = text, n
		}
	}

	if bestLen < MinContainerLength {
		best = clipper.NormalizeWhitespace(nodeText(doc.Find("body")))
	}

	if best == "" {
		return "", clipper.Errorf(clipper.ECONTENT, "no text found in document")
	}
	return best, nil
}

// outermost drops matches nested inside other matches of the same selection
// so their text is not counted twice.
func outermost(sel *goquery.Selection) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered("*").FilterNodes(sel.Nodes...).Length() == 0
	})
}

// blockElements start a new line in extracted text.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// nodeText renders the text of sel, breaking lines at block elements so
// headings and paragraphs stay on lines of their own.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
