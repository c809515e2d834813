package clipper

import (
	"context"
	"strings"
	"time"
)

// Sentinels used when video metadata is missing.
const (
	UnknownTitle   = "Unknown Title"
	UnknownChannel = "Unknown Channel"
	UnknownDate    = "Unknown Date"
	Unknown        = "Unknown"
)

// VideoMetadata describes a video. Every field is optional; zero values mean
// the upstream extractor did not report the field.
type VideoMetadata struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ChannelName     string `json:"channelName"`
	DurationSeconds int    `json:"durationSeconds"`
	UploadDate      string `json:"uploadDate"`
	ViewCount       int64  `json:"viewCount"`
}

// WithDefaults returns a copy of m with missing text fields replaced by the
// Unknown sentinels. A nil receiver yields all-unknown metadata.
func (m *VideoMetadata) WithDefaults() VideoMetadata {
	var out VideoMetadata
	if m != nil {
		out = *m
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = UnknownTitle
	}
	if strings.TrimSpace(out.ChannelName) == "" {
		out.ChannelName = UnknownChannel
	}
	if strings.TrimSpace(out.UploadDate) == "" {
		out.UploadDate = UnknownDate
	}
	return out
}

// MetadataService looks up video metadata without downloading media.
type MetadataService interface {
	VideoMetadata(ctx context.Context, url string) (*VideoMetadata, error)
}

// TranscriptFragment is one caption line of a transcript.
type TranscriptFragment struct {
	Text     string        `json:"text"`
	Offset   time.Duration `json:"offset"`
	Duration time.Duration `json:"duration"`
}

// TranscriptService fetches video transcripts.
type TranscriptService interface {
	// Transcript returns caption fragments in playback order.
	// Language is an optional preferred language code.
	// Returns ETRANSCRIPTDISABLED when captions are turned off,
	// ETRANSCRIPTUNAVAILABLE when no usable transcript exists, and EFETCH
	// when the transcript could not be retrieved.
	Transcript(ctx context.Context, videoID, language string) ([]TranscriptFragment, error)
}

// TranscriptStatus is the resolved state of a transcript sub-fetch.
type TranscriptStatus string

// Transcript states. Every state except TranscriptOK resolves to
// placeholder content rather than a failed extraction.
const (
	TranscriptOK          TranscriptStatus = "ok"
	TranscriptEmpty       TranscriptStatus = "empty"
	TranscriptDisabled    TranscriptStatus = "disabled"
	TranscriptUnavailable TranscriptStatus = "unavailable"
	TranscriptFetchFailed TranscriptStatus = "fetch_failed"
)

// Placeholder content stored instead of a transcript.
const (
	TranscriptEmptyPlaceholder       = "[No transcript available for this video.]"
	TranscriptDisabledPlaceholder    = "[Transcript is disabled by the video creator.]"
	TranscriptUnavailablePlaceholder = "[Transcript is not available for this video.]"
	TranscriptFetchFailedPlaceholder = "[Transcript could not be fetched.]"
)

// Placeholder returns the content stored for a transcript in this state.
// TranscriptOK has no placeholder.
func (s TranscriptStatus) Placeholder() string {
	switch s {
	case TranscriptOK:
		return ""
	case TranscriptEmpty:
		return TranscriptEmptyPlaceholder
	case TranscriptDisabled:
		return TranscriptDisabledPlaceholder
	case TranscriptFetchFailed:
		return TranscriptFetchFailedPlaceholder
	default:
		return TranscriptUnavailablePlaceholder
	}
}

// TranscriptStatusOf classifies a transcript fetch error.
// Errors coded ETRANSCRIPTDISABLED map to TranscriptDisabled and EFETCH maps
// to TranscriptFetchFailed. Uncoded errors whose message says captions or the
// transcript are disabled also map to TranscriptDisabled. Everything else is
// TranscriptUnavailable.
func TranscriptStatusOf(err error) TranscriptStatus {
	if err == nil {
		return TranscriptOK
	}
	switch ErrorCode(err) {
	case ETRANSCRIPTDISABLED:
		return TranscriptDisabled
	case EFETCH:
		return TranscriptFetchFailed
	case EINTERNAL:
	default:
		return TranscriptUnavailable
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "disabled") || strings.Contains(msg, "captions are turned off") {
		return TranscriptDisabled
	}
	return TranscriptUnavailable
}

// JoinTranscript joins fragment texts with single spaces.
func JoinTranscript(fragments []TranscriptFragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if text := strings.TrimSpace(f.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
