package clipper

import "context"

// Fetcher retrieves HTML (or any text body) from URLs.
// Implementations enforce their own timeout in addition to ctx.
type Fetcher interface {
	// Fetch returns the response body for url.
	// Network failures, timeouts and non-success statuses return EFETCH.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
