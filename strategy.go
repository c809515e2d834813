package clipper

import "context"

// Outcome is the uniform result of a single strategy attempt.
// Attempts never return errors directly; a failed attempt carries its error
// code (and the underlying error for diagnostics) so the caller can decide
// whether to fall back.
type Outcome struct {
	OK    bool
	Value string
	Code  string
	Err   error
}

// Succeeded returns a successful Outcome holding value.
func Succeeded(value string) Outcome {
	return Outcome{OK: true, Value: value}
}

// Failed returns a failed Outcome for err. The code is taken from err.
func Failed(err error) Outcome {
	return Outcome{Code: ErrorCode(err), Err: err}
}

// Strategy is one way of turning an input (HTML, a URL) into text.
// Pipelines try strategies in a fixed priority order and stop at the first
// successful Outcome.
type Strategy interface {
	// Name identifies the strategy in logs and result metadata.
	Name() string

	// Attempt runs the strategy. It must honor ctx and never panic.
	Attempt(ctx context.Context, input string) Outcome
}
