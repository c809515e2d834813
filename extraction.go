package clipper

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MinContentLength is the minimum number of characters extracted content
// must have before a non-video result is considered valid.
const MinContentLength = 50

// ExtractionRequest is a single request to turn a URL into a clip.
type ExtractionRequest struct {
	URL string `json:"url"`

	// Language is an optional language hint (e.g. "en") used to pick
	// transcript tracks. Empty means no preference.
	Language string `json:"language,omitempty"`
}

// ExtractionResult is the normalized record produced by the pipeline.
type ExtractionResult struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Kind     ContentKind    `json:"kind"`
	Metadata map[string]any `json:"metadata"`

	// Tags are derived from Kind and handed to the persistence layer.
	Tags []string `json:"tags,omitempty"`
}

// Validate returns ECONTENT if the result must not be persisted.
//
// Content must be non-empty for every kind. Webpage and social results
// additionally need at least MinContentLength characters. For video results
// metadata alone suffices: a video without a transcript is still worth
// storing.
func (r *ExtractionResult) Validate() error {
	if r == nil {
		return Errorf(ECONTENT, "no extraction result")
	}
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return Errorf(ECONTENT, "extracted content is empty")
	}

	if r.Kind == KindVideo {
		if len(r.Metadata) == 0 && strings.TrimSpace(r.Title) == "" {
			return Errorf(ECONTENT, "video result has no metadata")
		}
		return nil
	}

	if n := utf8.RuneCountInString(content); n < MinContentLength {
		return Errorf(ECONTENT, "extracted content too short (%d characters, need %d)", n, MinContentLength)
	}
	return nil
}

// Extractor turns a URL into a validated ExtractionResult.
//
// Only EFETCH, ECONTENT and EINVALIDURL are returned as errors; adapter
// failures are absorbed by fallbacks or placeholder content.
type Extractor interface {
	Extract(ctx context.Context, req *ExtractionRequest) (*ExtractionResult, error)
}
