package clipper

import (
	"net/url"
	"strings"
)

// ContentKind identifies the extraction family that applies to a URL.
type ContentKind string

// Supported content kinds.
const (
	KindVideo   ContentKind = "video"
	KindWebpage ContentKind = "webpage"
	KindSocial  ContentKind = "social"
)

// Tags returns the tag set stored alongside clips of this kind.
func (k ContentKind) Tags() []string {
	switch k {
	case KindVideo:
		return []string{"video", "media"}
	case KindSocial:
		return []string{"social", "post"}
	default:
		return []string{"webpage", "article"}
	}
}

// Valid reports whether k is one of the known kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case KindVideo, KindWebpage, KindSocial:
		return true
	}
	return false
}

// VideoHosts are the hostnames classified as KindVideo.
// Subdomains (www., m., music.) match as well.
var VideoHosts = []string{
	"youtube.com",
	"youtu.be",
	"youtube-nocookie.com",
	"vimeo.com",
	"dailymotion.com",
	"twitch.tv",
}

// SocialHosts are the hostnames classified as KindSocial.
var SocialHosts = []string{
	"twitter.com",
	"x.com",
}

// Classify returns the content kind for a URL based on its hostname only.
// It performs no I/O and never fails: unparsable URLs are KindWebpage and
// surface as extraction errors further down the pipeline.
func Classify(rawURL string) ContentKind {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return KindWebpage
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return KindWebpage
	}

	if matchHost(host, VideoHosts) {
		return KindVideo
	}
	if matchHost(host, SocialHosts) {
		return KindSocial
	}
	return KindWebpage
}

// matchHost reports whether host equals one of the domains or is a subdomain of one.
func matchHost(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// ParseURL validates that rawURL is an absolute http(s) URL with a host.
// Returns EINVALIDURL otherwise.
func ParseURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, Errorf(EINVALIDURL, "URL required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, WrapError(EINVALIDURL, err, "malformed URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALIDURL, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, Errorf(EINVALIDURL, "URL %q has no host", rawURL)
	}
	return u, nil
}

// VideoID extracts the YouTube video identifier from the common URL forms:
// watch?v=ID, youtu.be/ID, /embed/ID, /shorts/ID and /live/ID.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", WrapError(EINVALIDURL, err, "malformed URL %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())

	var id string
	switch {
	case host == "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case matchHost(host, []string{"youtube.com", "youtube-nocookie.com"}):
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id = strings.TrimPrefix(u.Path, prefix)
				break
			}
		}
	}

	// Strip trailing path segments such as youtu.be/ID/ or /shorts/ID/feature
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", Errorf(EINVALIDURL, "could not extract video ID from %q", rawURL)
	}
	return id, nil
}
