package clipper

// SocialPlaceholder is stored when a social post's text cannot be recovered.
// The bare link is still worth saving.
const SocialPlaceholder = "[Could not extract tweet content. The post might be private, deleted, or a video.]"

// DefaultSocialProxyHost renders public posts as embeddable pages that carry
// the post text in an og:description meta tag.
const DefaultSocialProxyHost = "twitframe.com"
