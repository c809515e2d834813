package exec

import (
	"context"
	"os"
	"strings"

	"github.com/fwojciec/clipper"
)

// DefaultTrafilaturaBinary is the trafilatura CLI looked up on PATH.
const DefaultTrafilaturaBinary = "trafilatura"

// Ensure ArticleExtractor implements clipper.ArticleExtractor at compile time.
var _ clipper.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor extracts main article text by handing the HTML to the
// trafilatura CLI through a temporary file.
type ArticleExtractor struct {
	Runner Runner

	// Args precede the input path. Defaults to "-f" (favor recall).
	Args []string
}

// NewArticleExtractor creates an ArticleExtractor for the given binary.
// An empty binary means DefaultTrafilaturaBinary.
func NewArticleExtractor(binary string) *ArticleExtractor {
	if binary == "" {
		binary = DefaultTrafilaturaBinary
	}
	return &ArticleExtractor{
		Runner: Runner{Binary: binary, Timeout: DefaultTimeout},
		Args:   []string{"-f"},
	}
}

// ExtractArticle writes html to a per-call temp file, runs the extractor on
// it, and returns the trimmed stdout. The temp file is removed on every
// path.
func (e *ArticleExtractor) ExtractArticle(ctx context.Context, html string) (string, error) {
	f, err := os.CreateTemp("", "clipper-*.html")
	if err != nil {
		return "", clipper.WrapError(clipper.ESUBPROCESS, err, "creating temp file")
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return "", clipper.WrapError(clipper.ESUBPROCESS, err, "writing temp file")
	}
	if err := f.Close(); err != nil {
		return "", clipper.WrapError(clipper.ESUBPROCESS, err, "closing temp file")
	}

	args := make([]string, 0, len(e.Args)+1)
	args = append(args, e.Args...)
	args = append(args, path)

	out, err := e.Runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
