package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of clipper.Fetcher.
// A nil CloseFn makes Close a no-op, since most pipelines never close it.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
