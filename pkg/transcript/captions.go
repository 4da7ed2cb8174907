// Package transcript retrieves video transcripts: platform captions
// first, with an optional local speech-recognition fallback.
package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"likesdigest/pkg/model"
)

// ErrNoCaptions reports that the video has no caption tracks at all,
// as opposed to a transport or parse failure.
var ErrNoCaptions = errors.New("no captions available")

var (
	playerResponseRe = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*({.+?});`)
	captionLineRe    = regexp.MustCompile(`<text\s+start="([\d.]+)"\s+dur="([\d.]+)"[^>]*>([^<]*)</text>`)
)

// CaptionClient scrapes platform-native caption tracks from the watch
// page and fetches the timed-text track best matching the configured
// language preference order.
type CaptionClient struct {
	client   *http.Client
	watchURL string
}

func NewCaptionClient() *CaptionClient {
	return &CaptionClient{
		client:   &http.Client{Timeout: 30 * time.Second},
		watchURL: "https://www.youtube.com/watch?v=",
	}
}

// NewCaptionClientWithWatchURL overrides the watch-page base URL (for
// testing).
func NewCaptionClientWithWatchURL(client *http.Client, watchURL string) *CaptionClient {
	return &CaptionClient{client: client, watchURL: watchURL}
}

type captionTrack struct {
	URL          string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Fetch returns the language tag and timed segments of the first
// caption track matching the preference order, falling back to the
// first available track.
func (c *CaptionClient) Fetch(ctx context.Context, videoID string, languages []string) (string, []model.Segment, error) {
	html, err := c.get(ctx, c.watchURL+videoID)
	if err != nil {
		return "", nil, err
	}

	tracks, err := extractCaptionTracks(html)
	if err != nil {
		return "", nil, err
	}
	if len(tracks) == 0 {
		return "", nil, ErrNoCaptions
	}

	track := pickTrack(tracks, languages)

	body, err := c.get(ctx, track.URL)
	if err != nil {
		return "", nil, fmt.Errorf("fetch caption track: %w", err)
	}

	segments := parseCaptionXML(body)
	if len(segments) == 0 {
		return "", nil, ErrNoCaptions
	}
	return track.LanguageCode, segments, nil
}

func (c *CaptionClient) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return string(body), nil
}

func extractCaptionTracks(html string) ([]captionTrack, error) {
	match := playerResponseRe.FindStringSubmatch(html)
	if len(match) < 2 {
		// Pages without a player response carry no caption data.
		return nil, nil
	}

	var playerResponse struct {
		Captions struct {
			PlayerCaptionsTracklistRenderer struct {
				CaptionTracks []captionTrack `json:"captionTracks"`
			} `json:"playerCaptionsTracklistRenderer"`
		} `json:"captions"`
	}
	if err := json.Unmarshal([]byte(match[1]), &playerResponse); err != nil {
		return nil, fmt.Errorf("parse player response: %w", err)
	}
	return playerResponse.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

// pickTrack honors the preference order; the first configured language
// with a matching track wins. Tags are matched on their primary
// subtag, so "en" accepts "en-US".
func pickTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang || strings.HasPrefix(t.LanguageCode, lang+"-") {
				return t
			}
		}
	}
	return tracks[0]
}

func parseCaptionXML(xml string) []model.Segment {
	var segments []model.Segment
	for _, match := range captionLineRe.FindAllStringSubmatch(xml, -1) {
		var start, dur float64
		fmt.Sscanf(match[1], "%f", &start)
		fmt.Sscanf(match[2], "%f", &dur)

		text := strings.TrimSpace(decodeHTMLEntities(match[3]))
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{Text: text, Start: start, Duration: dur})
	}
	return segments
}

func decodeHTMLEntities(s string) string {
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// JoinSegments flattens timed segments into the full transcript text.
func JoinSegments(segments []model.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
