// Package youtube fetches video transcripts from YouTube's timed-text
// captions.
package youtube

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/clipper"
	"golang.org/x/net/html"
)

// DefaultBaseURL is the origin watch pages are fetched from.
const DefaultBaseURL = "https://www.youtube.com"

// playerResponseMarker precedes the player JSON embedded in a watch page.
const playerResponseMarker = "ytInitialPlayerResponse"

// Ensure TranscriptService implements clipper.TranscriptService at compile time.
var _ clipper.TranscriptService = (*TranscriptService)(nil)

// TranscriptService reads caption tracks from a video's watch page and
// downloads the chosen track as timed-text XML.
type TranscriptService struct {
	fetcher clipper.Fetcher
	baseURL string
}

// Option configures a TranscriptService.
type Option func(*TranscriptService)

// WithBaseURL overrides the origin watch pages are fetched from.
func WithBaseURL(u string) Option {
	return func(s *TranscriptService) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewTranscriptService creates a TranscriptService that issues requests
// through fetcher.
func NewTranscriptService(fetcher clipper.Fetcher, opts ...Option) *TranscriptService {
	s := &TranscriptService{
		fetcher: fetcher,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// playerResponse is the subset of ytInitialPlayerResponse used here.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// generated reports whether the track is automatic speech recognition.
func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

// Transcript returns the caption fragments of videoID.
func (s *TranscriptService) Transcript(ctx context.Context, videoID, language string) ([]clipper.TranscriptFragment, error) {
	if videoID == "" {
		return nil, clipper.Errorf(clipper.EINVALIDURL, "empty video ID")
	}

	page, err := s.fetch(ctx, s.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, err
	}
	if strings.Contains(page, `class="g-recaptcha"`) {
		return nil, clipper.Errorf(clipper.EFETCH, "rate limited by YouTube (captcha)")
	}

	pr, err := parsePlayerResponse(page)
	if err != nil {
		return nil, err
	}
	if status := pr.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "video %s is not playable: %s %s", videoID, status, pr.PlayabilityStatus.Reason)
	}
	if pr.Captions == nil {
		return nil, clipper.Errorf(clipper.ETRANSCRIPTDISABLED, "transcript is disabled on video %s", videoID)
	}

	track, ok := chooseTrack(pr.Captions.Renderer.CaptionTracks, language)
	if !ok {
		return nil, clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "no caption tracks for video %s", videoID)
	}

	body, err := s.fetch(ctx, s.resolve(track.BaseURL))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

func (s *TranscriptService) fetch(ctx context.Context, u string) (string, error) {
	body, err := s.fetcher.Fetch(ctx, u)
	if err == nil {
		return body, nil
	}
	if clipper.ErrorCode(err) == clipper.EFETCH {
		return "", err
	}
	return "", clipper.WrapError(clipper.EFETCH, err, "fetching %s", u)
}

// resolve turns a relative track URL into an absolute one.
func (s *TranscriptService) resolve(trackURL string) string {
	if strings.HasPrefix(trackURL, "/") {
		return s.baseURL + trackURL
	}
	return trackURL
}

// parsePlayerResponse decodes the JSON object assigned to
// ytInitialPlayerResponse. Decoding stops at the end of the object, so the
// script text that follows it is ignored.
func parsePlayerResponse(page string) (*playerResponse, error) {
	idx := strings.Index(page, playerResponseMarker)
	if idx < 0 {
		return nil, clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "player response not found")
	}
	rest := page[idx+len(playerResponseMarker):]
	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return nil, clipper.Errorf(clipper.ETRANSCRIPTUNAVAILABLE, "player response not found")
	}

	var pr playerResponse
	if err := json.NewDecoder(strings.NewReader(rest[start:])).Decode(&pr); err != nil {
		return nil, clipper.WrapError(clipper.ETRANSCRIPTUNAVAILABLE, err, "decoding player response")
	}
	return &pr, nil
}

// chooseTrack picks a caption track. Tracks in the requested language win,
// exact code before regional variants, and manual captions before generated
// ones. Without a match the first manual track (or the first track) is used.
func chooseTrack(tracks []captionTrack, language string) (captionTrack, bool) {
	if len(tracks) == 0 {
		return captionTrack{}, false
	}

	language = strings.ToLower(language)
	if language != "" {
		matchers := []func(captionTrack) bool{
			func(t captionTrack) bool { return strings.ToLower(t.LanguageCode) == language },
			func(t captionTrack) bool { return strings.HasPrefix(strings.ToLower(t.LanguageCode), language+"-") },
		}
		for _, match := range matchers {
			if t, ok := firstTrack(tracks, match); ok {
				return t, true
			}
		}
	}

	t, _ := firstTrack(tracks, func(captionTrack) bool { return true })
	return t, true
}

// firstTrack returns the first matching manual track, else the first
// matching generated one.
func firstTrack(tracks []captionTrack, match func(captionTrack) bool) (captionTrack, bool) {
	var generated *captionTrack
	for i, t := range tracks {
		if !match(t) {
			continue
		}
		if !t.generated() {
			return t, true
		}
		if generated == nil {
			generated = &tracks[i]
		}
	}
	if generated != nil {
		return *generated, true
	}
	return captionTrack{}, false
}

// parseTimedText parses both timed-text formats: <text start dur> in
// seconds and <p t d> in milliseconds.
func parseTimedText(body string) ([]clipper.TranscriptFragment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, clipper.WrapError(clipper.ETRANSCRIPTUNAVAILABLE, err, "parsing timed text")
	}

	var fragments []clipper.TranscriptFragment
	for _, el := range doc.FindElements("//text") {
		fragments = appendFragment(fragments, el,
			seconds(el.SelectAttrValue("start", "0")),
			seconds(el.SelectAttrValue("dur", "0")))
	}
	for _, el := range doc.FindElements("//body/p") {
		fragments = appendFragment(fragments, el,
			millis(el.SelectAttrValue("t", "0")),
			millis(el.SelectAttrValue("d", "0")))
	}
	return fragments, nil
}

func appendFragment(fragments []clipper.TranscriptFragment, el *etree.Element, offset, duration time.Duration) []clipper.TranscriptFragment {
	text := cleanText(elementText(el))
	if text == "" {
		return fragments
	}
	return append(fragments, clipper.TranscriptFragment{
		Text:     text,
		Offset:   offset,
		Duration: duration,
	})
}

// elementText concatenates the text of el and all of its descendants.
func elementText(el *etree.Element) string {
	var b strings.Builder
	b.WriteString(el.Text())
	for _, child := range el.ChildElements() {
		b.WriteString(elementText(child))
		b.WriteString(child.Tail())
	}
	return b.String()
}

// cleanText decodes the entities YouTube escapes a second time inside the
// XML and folds line breaks into spaces.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

func seconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func millis(s string) time.Duration {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}
