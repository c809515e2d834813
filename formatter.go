package clipper

import (
	"fmt"
	"sort"
	"strings"
)

// previewLength is the number of content characters shown by FormatClip
// when full output is not requested.
const previewLength = 500

// FormatClip formats a clip for display.
// Unless full is set, content is cut to a short preview.
func FormatClip(c *Clip, full bool) string {
	var b strings.Builder

	title := c.Title
	if title == "" {
		title = c.URL
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "id:      %s\n", c.ID)
	fmt.Fprintf(&b, "url:     %s\n", c.URL)
	fmt.Fprintf(&b, "kind:    %s\n", c.Kind)
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "tags:    %s\n", strings.Join(c.Tags, ", "))
	}
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "created: %s\n", c.CreatedAt.Format("2006-01-02 15:04"))
	}

	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", k, c.Metadata[k])
	}

	content := c.Content
	if !full {
		content = Truncate(content, previewLength)
	}
	b.WriteString("\n")
	b.WriteString(content)
	return b.String()
}
