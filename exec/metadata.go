package exec

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/clipper"
)

// DefaultYtDlpBinary is the yt-dlp CLI looked up on PATH.
const DefaultYtDlpBinary = "yt-dlp"

// Ensure MetadataService implements clipper.MetadataService at compile time.
var _ clipper.MetadataService = (*MetadataService)(nil)

// MetadataService reads video metadata from yt-dlp's JSON dump without
// downloading media.
type MetadataService struct {
	Runner Runner
}

// NewMetadataService creates a MetadataService for the given binary.
// An empty binary means DefaultYtDlpBinary.
func NewMetadataService(binary string) *MetadataService {
	if binary == "" {
		binary = DefaultYtDlpBinary
	}
	return &MetadataService{Runner: Runner{Binary: binary, Timeout: DefaultTimeout}}
}

// ytdlpInfo is the subset of yt-dlp's info dict used here. Duration is a
// float for some extractors.
type ytdlpInfo struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Uploader    string  `json:"uploader"`
	Channel     string  `json:"channel"`
	UploadDate  string  `json:"upload_date"`
	ViewCount   int64   `json:"view_count"`
}

// VideoMetadata runs yt-dlp for url. Missing fields are left at their zero
// value. Process failures are ESUBPROCESS; unparseable output is EINTERNAL.
func (s *MetadataService) VideoMetadata(ctx context.Context, url string) (*clipper.VideoMetadata, error) {
	out, err := s.Runner.Run(ctx, "--dump-json", "--skip-download", "--no-playlist", "--no-warnings", url)
	if err != nil {
		return nil, err
	}

	var info ytdlpInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, clipper.WrapError(clipper.EINTERNAL, err, "decoding yt-dlp output")
	}

	channel := info.Channel
	if channel == "" {
		channel = info.Uploader
	}

	return &clipper.VideoMetadata{
		Title:           info.Title,
		Description:     info.Description,
		ChannelName:     channel,
		DurationSeconds: int(info.Duration),
		UploadDate:      formatUploadDate(info.UploadDate),
		ViewCount:       info.ViewCount,
	}, nil
}

// formatUploadDate turns yt-dlp's YYYYMMDD into YYYY-MM-DD. Other shapes
// are returned unchanged.
func formatUploadDate(s string) string {
	if len(s) != 8 {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:]
}
