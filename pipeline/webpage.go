package pipeline

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/fwojciec/clipper"
)

// WebpagePipeline fetches a page and runs it through the article chain.
type WebpagePipeline struct {
	fetcher clipper.Fetcher
	chain   *Chain
	logger  *slog.Logger
}

// NewWebpagePipeline creates a WebpagePipeline. article is tried first and
// must produce ArticleMinLength characters; dom is the fallback. Either may
// be nil to skip that step.
func NewWebpagePipeline(fetcher clipper.Fetcher, articleName string, article, dom clipper.ArticleExtractor, logger *slog.Logger) *WebpagePipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if articleName == "" {
		articleName = StrategySubprocessArticle
	}

	var strategies []clipper.Strategy
	if article != nil {
		strategies = append(strategies, NewArticleStrategy(articleName, article, ArticleMinLength))
	}
	if dom != nil {
		strategies = append(strategies, NewArticleStrategy(StrategyDOMHeuristic, dom, 1))
	}

	return &WebpagePipeline{
		fetcher: fetcher,
		chain:   NewChain(logger, strategies...),
		logger:  logger,
	}
}

// Extract fetches req.URL and extracts its main text. A fetch failure is
// EFETCH; when no strategy produces text the result is ECONTENT.
func (p *WebpagePipeline) Extract(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
	html, err := p.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, asFetchError(err, req.URL)
	}

	name, out := p.chain.Run(ctx, html)
	if !out.OK {
		return nil, clipper.WrapError(clipper.ECONTENT, out.Err, "no text could be extracted from %s", req.URL)
	}

	return &clipper.ExtractionResult{
		Title:   clipper.TitleFromContent(out.Value),
		Content: out.Value,
		Kind:    clipper.KindWebpage,
		Metadata: map[string]any{
			"type":              string(clipper.KindWebpage),
			"extraction_method": name,
			"source_host":       hostOf(req.URL),
		},
	}, nil
}

// asFetchError keeps EFETCH errors and wraps anything else as EFETCH.
func asFetchError(err error, rawURL string) error {
	if clipper.ErrorCode(err) == clipper.EFETCH {
		return err
	}
	return clipper.WrapError(clipper.EFETCH, err, "fetching %s", rawURL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
