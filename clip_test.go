package clipper_test

import (
	"testing"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClip_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *clipper.Clip {
		return &clipper.Clip{
			UserID:  "user-1",
			URL:     "https://example.com",
			Content: "content",
			Kind:    clipper.KindWebpage,
		}
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.UserID = ""
	assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(c.Validate()))

	c = valid()
	c.URL = ""
	assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(c.Validate()))

	c = valid()
	c.Content = ""
	assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(c.Validate()))

	c = valid()
	c.Kind = "podcast"
	assert.Equal(t, clipper.EINVALID, clipper.ErrorCode(c.Validate()))
}

func TestNewClip(t *testing.T) {
	t.Parallel()

	res := &clipper.ExtractionResult{
		Title:    "Title",
		Content:  "Content",
		Kind:     clipper.KindVideo,
		Metadata: map[string]any{"channel": "Test Channel"},
		Tags:     clipper.KindVideo.Tags(),
	}

	c := clipper.NewClip("user-1", "https://youtu.be/abc", res)

	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "https://youtu.be/abc", c.URL)
	assert.Equal(t, "Title", c.Title)
	assert.Equal(t, clipper.KindVideo, c.Kind)
	assert.Equal(t, []string{"video", "media"}, c.Tags)
	assert.Empty(t, c.ID)
}

func TestNewBareClip(t *testing.T) {
	t.Parallel()

	cause := clipper.Errorf(clipper.EFETCH, "timeout")
	c := clipper.NewBareClip("user-1", "https://example.com/post", cause)

	require.NoError(t, c.Validate())
	assert.Equal(t, clipper.KindWebpage, c.Kind)
	assert.Equal(t, "https://example.com/post", c.Title)
	assert.Contains(t, c.Content, "Could not reach the page.")
	assert.Equal(t, true, c.Metadata["extraction_failed"])
	assert.Equal(t, clipper.EFETCH, c.Metadata["error_code"])
	assert.Contains(t, c.Tags, "bare")
}

func TestFormatClip(t *testing.T) {
	t.Parallel()

	c := &clipper.Clip{
		ID:        "clip-1",
		URL:       "https://example.com/a",
		Title:     "An Article",
		Content:   "Body text",
		Kind:      clipper.KindWebpage,
		Tags:      []string{"webpage", "article"},
		Metadata:  map[string]any{"type": "webpage", "extraction_method": "subprocess_article"},
		CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}

	out := clipper.FormatClip(c, false)

	assert.Contains(t, out, "# An Article")
	assert.Contains(t, out, "id:      clip-1")
	assert.Contains(t, out, "tags:    webpage, article")
	assert.Contains(t, out, "created: 2025-01-15 10:00")
	assert.Contains(t, out, "extraction_method: subprocess_article")
	assert.Contains(t, out, "Body text")
}

func TestFormatClip_PreviewTruncatesContent(t *testing.T) {
	t.Parallel()

	long := make([]byte, 1200)
	for i := range long {
		long[i] = 'z'
	}
	c := &clipper.Clip{URL: "https://example.com", Content: string(long), Kind: clipper.KindWebpage}

	preview := clipper.FormatClip(c, false)
	full := clipper.FormatClip(c, true)

	assert.Contains(t, preview, "...")
	assert.Less(t, len(preview), len(full))
	assert.Contains(t, preview, "# https://example.com")
}
