// Package pipeline turns URLs into validated extraction results: it
// classifies a URL, runs the matching webpage, video or social pipeline,
// and validates what comes back.
package pipeline

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/clipper"
)

// ArticleMinLength is the number of characters an article extractor must
// return before its output is accepted.
const ArticleMinLength = 100

// Strategy names reported as extraction_method.
const (
	StrategySubprocessArticle = "subprocess_article"
	StrategyDOMHeuristic      = "dom_heuristic"
)

// Chain tries strategies in order and stops at the first success.
type Chain struct {
	strategies []clipper.Strategy
	logger     *slog.Logger
}

// NewChain creates a Chain. A nil logger discards fallback logs.
func NewChain(logger *slog.Logger, strategies ...clipper.Strategy) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Chain{strategies: strategies, logger: logger}
}

// Run returns the name and outcome of the first successful strategy. When
// every strategy fails, the last failed outcome is returned with an empty
// name.
func (c *Chain) Run(ctx context.Context, input string) (string, clipper.Outcome) {
	last := clipper.Failed(clipper.Errorf(clipper.ECONTENT, "no extraction strategy configured"))
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return "", clipper.Failed(err)
		}
		out := attempt(ctx, s, input)
		if out.OK {
			return s.Name(), out
		}
		c.logger.Debug("strategy failed, falling back",
			"strategy", s.Name(),
			"code", out.Code,
			"err", out.Err,
		)
		last = out
	}
	return "", last
}

// attempt runs s, turning a panic into a failed outcome.
func attempt(ctx context.Context, s clipper.Strategy, input string) (out clipper.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = clipper.Failed(clipper.Errorf(clipper.EINTERNAL, "strategy %s panicked: %v", s.Name(), r))
		}
	}()
	return s.Attempt(ctx, input)
}

// ArticleStrategy adapts an ArticleExtractor to a Strategy. Output is
// whitespace-normalized and must reach MinLength characters.
type ArticleStrategy struct {
	name      string
	extractor clipper.ArticleExtractor
	minLength int
}

// Ensure ArticleStrategy implements clipper.Strategy at compile time.
var _ clipper.Strategy = (*ArticleStrategy)(nil)

// NewArticleStrategy creates an ArticleStrategy.
func NewArticleStrategy(name string, extractor clipper.ArticleExtractor, minLength int) *ArticleStrategy {
	return &ArticleStrategy{name: name, extractor: extractor, minLength: minLength}
}

// Name implements clipper.Strategy.
func (s *ArticleStrategy) Name() string { return s.name }

// Attempt implements clipper.Strategy.
func (s *ArticleStrategy) Attempt(ctx context.Context, html string) clipper.Outcome {
	text, err := s.extractor.ExtractArticle(ctx, html)
	if err != nil {
		return clipper.Failed(err)
	}
	text = clipper.NormalizeWhitespace(text)
	if n := utf8.RuneCountInString(text); n < s.minLength {
		return clipper.Failed(clipper.Errorf(clipper.ECONTENT,
			"%s returned %d characters, need %d", s.name, n, s.minLength))
	}
	return clipper.Succeeded(text)
}
