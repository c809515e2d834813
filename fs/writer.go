// Package fs exports clips as markdown files.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/clipper"
	"gopkg.in/yaml.v3"
)

// ClipPath converts a clip to a relative file path grouped by kind and host.
// Example: https://example.com/blog/post → webpage/example.com/blog/post-1a2b3c4d.md
func ClipPath(clip *clipper.Clip) (string, error) {
	u, err := url.Parse(clip.URL)
	if err != nil {
		return "", clipper.WrapError(clipper.EINVALIDURL, err, "invalid clip URL %q", clip.URL)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", clipper.Errorf(clipper.EINVALIDURL, "clip URL %q has no host", clip.URL)
	}

	var segments []string
	for _, s := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if s = sanitize(s); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		segments = []string{"index"}
	}

	// IDs keep clips of the same URL, or of URLs differing only by query, apart.
	if id := shortID(clip.ID); id != "" {
		segments[len(segments)-1] += "-" + id
	}

	rel := path.Join(append([]string{string(clip.Kind), sanitize(host)}, segments...)...)
	return filepath.FromSlash(rel + ".md"), nil
}

// sanitize replaces characters unsafe in file names and neutralizes dot segments.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return sanitize(id)
}

// frontmatter is the YAML header written above clip content.
type frontmatter struct {
	ID       string         `yaml:"id,omitempty"`
	URL      string         `yaml:"url"`
	Title    string         `yaml:"title"`
	Kind     string         `yaml:"kind"`
	Tags     []string       `yaml:"tags,omitempty"`
	Created  string         `yaml:"created,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

// FormatClip formats a clip as markdown with YAML frontmatter.
func FormatClip(clip *clipper.Clip) (string, error) {
	fm := frontmatter{
		ID:       clip.ID,
		URL:      clip.URL,
		Title:    clip.Title,
		Kind:     string(clip.Kind),
		Tags:     clip.Tags,
		Metadata: clip.Metadata,
	}
	if !clip.CreatedAt.IsZero() {
		fm.Created = clip.CreatedAt.UTC().Format(time.RFC3339)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", clipper.WrapError(clipper.EINTERNAL, err, "failed to encode frontmatter")
	}
	if err := enc.Close(); err != nil {
		return "", clipper.WrapError(clipper.EINTERNAL, err, "failed to encode frontmatter")
	}
	buf.WriteString("---\n\n")
	buf.WriteString(clip.Content)
	buf.WriteString("\n")
	return buf.String(), nil
}

// Ensure Writer implements clipper.ClipWriter at compile time.
var _ clipper.ClipWriter = (*Writer)(nil)

// Writer writes clips as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteClip writes a clip to disk as a markdown file.
func (w *Writer) WriteClip(ctx context.Context, clip *clipper.Clip) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := clip.Validate(); err != nil {
		return err
	}

	relPath, err := ClipPath(clip)
	if err != nil {
		return err
	}

	content, err := FormatClip(clip)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
