package clipper

import "context"

// TokenCounter counts tokens in text for a specific model.
// Clip token counts help decide how much stored content fits a model context.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
