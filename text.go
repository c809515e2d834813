package clipper

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of characters in a derived title,
// excluding the ellipsis marker.
const MaxTitleLength = 100

// NormalizeWhitespace collapses runs of whitespace within each line into a
// single space, trims every line, and drops blank lines so that runs of
// blank lines collapse into a single line break.
func NormalizeWhitespace(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.FieldsFunc(line, unicode.IsSpace)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n")
}

// TitleFromContent derives a title from extracted text: the first non-blank
// line, truncated to MaxTitleLength characters with a trailing "..." when
// truncated.
func TitleFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return Truncate(line, MaxTitleLength)
	}
	return ""
}

// Truncate shortens s to at most n characters, appending "..." if anything
// was cut off.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace) + "..."
}
