package clipper

import "context"

// ArticleExtractor extracts the readable article text from an HTML snapshot.
type ArticleExtractor interface {
	// ExtractArticle returns plain text extracted from html.
	// A failed extraction returns an error; callers treat short output as
	// failure themselves.
	ExtractArticle(ctx context.Context, html string) (string, error)
}
