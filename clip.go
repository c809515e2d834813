package clipper

import (
	"context"
	"time"
)

// Clip is a persisted extraction result owned by a user.
type Clip struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Kind        ContentKind    `json:"kind"`
	Metadata    map[string]any `json:"metadata"`
	Tags        []string       `json:"tags"`
	ContentHash string         `json:"contentHash"`
	Tokens      int            `json:"tokens"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewClip builds a clip from a validated extraction result.
func NewClip(userID, url string, res *ExtractionResult) *Clip {
	return &Clip{
		UserID:   userID,
		URL:      url,
		Title:    res.Title,
		Content:  res.Content,
		Kind:     res.Kind,
		Metadata: res.Metadata,
		Tags:     res.Tags,
	}
}

// NewBareClip builds a clip for a URL whose extraction failed, so the link
// can still be saved. The content records why extraction failed.
func NewBareClip(userID, url string, cause error) *Clip {
	kind := Classify(url)
	return &Clip{
		UserID:  userID,
		URL:     url,
		Title:   url,
		Content: "[Content extraction failed: " + UserMessage(cause) + " Saved link only.]",
		Kind:    kind,
		Metadata: map[string]any{
			"type":              string(kind),
			"extraction_method": "manual",
			"extraction_failed": true,
			"error_code":        ErrorCode(cause),
		},
		Tags: append(kind.Tags(), "bare"),
	}
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.UserID == "" {
		return Errorf(EINVALID, "clip user ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "clip URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "clip content required")
	}
	if !c.Kind.Valid() {
		return Errorf(EINVALID, "invalid clip kind %q", c.Kind)
	}
	return nil
}

// ClipService represents a service for managing clips.
type ClipService interface {
	// CreateClip stores a new clip. ID, CreatedAt and ContentHash are
	// assigned by the service.
	CreateClip(ctx context.Context, clip *Clip) error

	// FindClipByID retrieves a clip by ID.
	// Returns ENOTFOUND if the clip does not exist.
	FindClipByID(ctx context.Context, id string) (*Clip, error)

	// FindClips retrieves clips matching the filter, newest first.
	FindClips(ctx context.Context, filter ClipFilter) ([]*Clip, error)

	// DeleteClip permanently removes a clip.
	// Returns ENOTFOUND if the clip does not exist.
	DeleteClip(ctx context.Context, id string) error
}

// ClipFilter represents a filter for FindClips.
type ClipFilter struct {
	ID     *string      `json:"id"`
	UserID *string      `json:"userId"`
	URL    *string      `json:"url"`
	Kind   *ContentKind `json:"kind"`

	// Query matches clips whose title or content contains the text.
	Query string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ClipWriter exports clips outside the database.
type ClipWriter interface {
	WriteClip(ctx context.Context, clip *Clip) error
}
