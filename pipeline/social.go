package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/clipper"
	"golang.org/x/net/html"
)

// ogDescription captures the content of the og:description meta tag as the
// proxy renders it.
var ogDescription = regexp.MustCompile(`<meta property="og:description" content="([^"]*)"\s*/?>`)

// SocialPipeline reads a post's text through an embed proxy that exposes it
// in an og:description tag. There is no second strategy: anything short of
// a match yields clipper.SocialPlaceholder.
type SocialPipeline struct {
	fetcher   clipper.Fetcher
	proxyHost string
	logger    *slog.Logger
}

// NewSocialPipeline creates a SocialPipeline. An empty proxyHost means
// clipper.DefaultSocialProxyHost.
func NewSocialPipeline(fetcher clipper.Fetcher, proxyHost string, logger *slog.Logger) *SocialPipeline {
	if proxyHost == "" {
		proxyHost = clipper.DefaultSocialProxyHost
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SocialPipeline{fetcher: fetcher, proxyHost: proxyHost, logger: logger}
}

// Extract implements the social branch of the orchestrator.
func (p *SocialPipeline) Extract(ctx context.Context, req *clipper.ExtractionRequest) (*clipper.ExtractionResult, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, clipper.WrapError(clipper.EINVALIDURL, err, "invalid URL %q", req.URL)
	}
	handle := postHandle(u)

	text, ok := p.postText(ctx, ProxyURL(u, p.proxyHost))
	content := text
	if !ok {
		content = clipper.SocialPlaceholder
	}

	title := clipper.TitleFromContent(text)
	if title == "" {
		title = "Post by @" + handle
	}

	return &clipper.ExtractionResult{
		Title:   title,
		Content: content,
		Kind:    clipper.KindSocial,
		Metadata: map[string]any{
			"type":              string(clipper.KindSocial),
			"author":            handle,
			"extraction_method": "proxy",
		},
	}, nil
}

// postText fetches the proxy page and returns the decoded post text.
func (p *SocialPipeline) postText(ctx context.Context, proxyURL string) (string, bool) {
	page, err := p.fetcher.Fetch(ctx, proxyURL)
	if err != nil {
		p.logger.Warn("social proxy fetch failed", "url", proxyURL, "err", err)
		return "", false
	}
	text, ok := ParseOGDescription(page)
	if !ok {
		p.logger.Debug("no og:description in proxy page", "url", proxyURL)
	}
	return text, ok
}

// ParseOGDescription returns the entity-decoded og:description of page.
// A missing or blank description is reported as not found.
func ParseOGDescription(page string) (string, bool) {
	m := ogDescription.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	text := strings.TrimSpace(html.UnescapeString(m[1]))
	return text, text != ""
}

// ProxyURL rewrites a twitter.com or x.com URL onto the proxy host, keeping
// the path and query.
func ProxyURL(u *url.URL, proxyHost string) string {
	proxied := *u
	proxied.Host = proxyHost
	proxied.User = nil
	return proxied.String()
}

// postHandle is the account name, the first path segment of a post URL.
func postHandle(u *url.URL) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if segment == "" {
		return "unknown"
	}
	return strings.TrimPrefix(segment, "@")
}
