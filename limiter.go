package clipper

import "context"

// DomainLimiter rate-limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

// URLFilter remembers URLs that have been seen. Implementations may report
// false positives but never false negatives.
type URLFilter interface {
	// TestAndAdd reports whether url was possibly seen before and records it.
	TestAndAdd(url string) bool
}
