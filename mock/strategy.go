package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of clipper.Strategy.
type Strategy struct {
	NameFn    func() string
	AttemptFn func(ctx context.Context, input string) clipper.Outcome
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Attempt(ctx context.Context, input string) clipper.Outcome {
	return s.AttemptFn(ctx, input)
}
