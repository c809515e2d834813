package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/clipper"
)

// Config holds the collaborators of an Orchestrator.
type Config struct {
	// Fetcher retrieves webpages and social proxy pages.
	Fetcher clipper.Fetcher

	// ArticleExtractor is the first webpage strategy. ArticleName labels it
	// in result metadata; empty means StrategySubprocessArticle.
	ArticleExtractor clipper.ArticleExtractor
	ArticleName      string

	// DOM is the fallback webpage strategy.
	DOM clipper.ArticleExtractor

	MetadataService   clipper.MetadataService
	TranscriptService clipper.TranscriptService

	// SocialProxyHost replaces twitter.com and x.com. Empty means
	// clipper.DefaultSocialProxyHost.
	SocialProxyHost string

	Logger *slog.Logger
}

// Ensure Orchestrator implements clipper.Extractor at compile time.
var _ clipper.Extractor = (*Orchestrator)(nil)

// Orchestrator classifies a URL, dispatches it to the matching pipeline and
// validates the result. It holds no per-request state and is safe for
// concurrent use.
type Orchestrator struct {
	webpage *WebpagePipeline
	video   *VideoPipeline
	social  *SocialPipeline
	logger  *slog.Logger
}

// NewOrchestrator builds the pipelines from cfg.
func NewOrchestrator(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		webpage: NewWebpagePipeline(cfg.Fetcher, cfg.ArticleName, cfg.ArticleExtractor, cfg.DOM, logger),
		video:   NewVideoPipeline(cfg.MetadataService, cfg.TranscriptService, logger),
		social:  NewSocialPipeline(cfg.Fetcher, cfg.SocialProxyHost, logger),
		logger:  logger,
	}
}

// Extract turns req.URL into a validated result. Errors carry EINVALIDURL,
// EFETCH or ECONTENT; nothing else escapes.
func (o *Orchestrator) Extract(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
	if req == nil {
		return nil, clipper.Errorf(clipper.EINVALIDURL, "no extraction request")
	}
	if _, err := clipper.ParseURL(req.URL); err != nil {
		return nil, err
	}

	kind := clipper.Classify(req.URL)
	o.logger.Debug("classified url", "url", req.URL, "kind", kind)

	var (
		res *clipper.ExtractionResult
		err error
	)
	switch kind {
	case clipper.KindVideo:
		res, err = o.video.Extract(ctx, req)
	case clipper.KindSocial:
		res, err = o.social.Extract(ctx, req)
	default:
		res, err = o.webpage.Extract(ctx, req)
	}
	if err != nil {
		return nil, terminal(err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, clipper.WrapError(clipper.EFETCH, ctxErr, "extraction of %s interrupted", req.URL)
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}
	res.Tags = kind.Tags()
	return res, nil
}

// terminal narrows a pipeline error to the codes callers handle.
func terminal(err error) error {
	switch clipper.ErrorCode(err) {
	case clipper.EFETCH, clipper.ECONTENT, clipper.EINVALIDURL:
		return err
	}
	return clipper.WrapError(clipper.ECONTENT, err, "extraction failed")
}
