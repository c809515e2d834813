package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/clipper"
)

// Saver extracts a URL and stores the result as a clip.
type Saver struct {
	extractor clipper.Extractor
	clips     clipper.ClipService
	tokens    clipper.TokenCounter
	allowBare bool
	logger    *slog.Logger
}

// SaverOption configures a Saver.
type SaverOption func(*Saver)

// WithTokenCounter records the token count of every stored clip.
func WithTokenCounter(tc clipper.TokenCounter) SaverOption {
	return func(s *Saver) {
		s.tokens = tc
	}
}

// WithBareFallback stores the bare link when extraction fails with EFETCH
// or ECONTENT, instead of returning the error.
func WithBareFallback(allow bool) SaverOption {
	return func(s *Saver) {
		s.allowBare = allow
	}
}

// WithSaverLogger sets the logger used for non-fatal problems.
func WithSaverLogger(logger *slog.Logger) SaverOption {
	return func(s *Saver) {
		s.logger = logger
	}
}

// NewSaver creates a Saver.
func NewSaver(extractor clipper.Extractor, clips clipper.ClipService, opts ...SaverOption) *Saver {
	s := &Saver{
		extractor: extractor,
		clips:     clips,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save extracts req.URL and stores the result for userID. Nothing is stored
// when extraction fails, unless the bare fallback is enabled and the
// failure is one a user could still want to keep the link for.
func (s *Saver) Save(ctx context.Context, userID string, req *clipper.ExtractionRequest) (*clipper.Clip, error) {
	res, err := s.extractor.Extract(ctx, req)

	var clip *clipper.Clip
	switch {
	case err == nil:
		clip = clipper.NewClip(userID, req.URL, res)
	case s.allowBare && bareable(err):
		s.logger.Warn("extraction failed, saving bare link",
			"url", req.URL,
			"code", clipper.ErrorCode(err),
			"err", err,
		)
		clip = clipper.NewBareClip(userID, req.URL, err)
	default:
		return nil, err
	}

	if s.tokens != nil {
		n, err := s.tokens.CountTokens(ctx, clip.Content)
		if err != nil {
			s.logger.Warn("token count failed", "url", req.URL, "err", err)
		} else {
			clip.Tokens = n
		}
	}

	if err := s.clips.CreateClip(ctx, clip); err != nil {
		return nil, err
	}
	return clip, nil
}

func bareable(err error) bool {
	switch clipper.ErrorCode(err) {
	case clipper.EFETCH, clipper.ECONTENT:
		return true
	}
	return false
}
