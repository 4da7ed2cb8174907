package transcript

import (
	"context"
	"errors"
	"log"
	"strings"

	"likesdigest/pkg/model"
)

// CaptionFetcher retrieves platform captions for a video.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) (language string, segments []model.Segment, err error)
}

// SpeechRecognizer transcribes a video's audio locally.
type SpeechRecognizer interface {
	Recognize(ctx context.Context, videoID, videoURL string) (language string, segments []model.Segment, err error)
}

// Extractor produces one Transcript per video. Platform captions are
// tried in the configured language-preference order; speech
// recognition runs as a fallback when captions are absent, or for
// every video when fallbackOnly is false.
type Extractor struct {
	captions      CaptionFetcher
	recognizer    SpeechRecognizer // nil when the capability is off
	whisperWanted bool             // configured on, even if unavailable
	languages     []string
	fallbackOnly  bool
}

func NewExtractor(captions CaptionFetcher, recognizer SpeechRecognizer, whisperWanted bool, languages []string, fallbackOnly bool) *Extractor {
	return &Extractor{
		captions:      captions,
		recognizer:    recognizer,
		whisperWanted: whisperWanted,
		languages:     languages,
		fallbackOnly:  fallbackOnly,
	}
}

// Extract runs the per-video state machine. Failures never abort the
// run; they are recorded in the returned record's status.
func (e *Extractor) Extract(ctx context.Context, video model.Video) model.Transcript {
	base := model.Transcript{
		VideoID:    video.ID,
		VideoTitle: video.Title,
		VideoURL:   video.URL,
		Channel:    video.Channel,
	}

	if e.recognizer != nil && !e.fallbackOnly {
		return e.recognize(ctx, video, base)
	}

	lang, segments, err := e.captions.Fetch(ctx, video.ID, e.languages)
	if err == nil {
		base.Language = lang
		base.Method = model.MethodCaptions
		base.Segments = segments
		base.Text = JoinSegments(segments)
		base.Status = model.StatusSuccess
		return base
	}

	if !errors.Is(err, ErrNoCaptions) {
		base.Status = model.StatusError
		base.Error = err.Error()
		return base
	}

	if e.recognizer != nil {
		log.Printf("No captions for %s, falling back to speech recognition", video.ID)
		return e.recognize(ctx, video, base)
	}

	if e.whisperWanted {
		// Speech recognition was configured but the capability probe
		// failed at startup.
		base.Status = model.StatusDisabled
		base.Error = "no captions and speech recognition unavailable"
		return base
	}

	base.Status = model.StatusNoTranscript
	base.Error = "no captions available"
	return base
}

func (e *Extractor) recognize(ctx context.Context, video model.Video, base model.Transcript) model.Transcript {
	lang, segments, err := e.recognizer.Recognize(ctx, video.ID, video.URL)
	if err != nil {
		base.Status = model.StatusError
		base.Error = err.Error()
		return base
	}

	base.Language = lang
	base.Method = model.MethodWhisper
	base.Segments = segments
	base.Text = JoinSegments(segments)
	base.Status = model.StatusSuccess
	return base
}

// IsLanguageLearning reports whether a transcript belongs to
// language-learning content: an English language tag, or a learning
// keyword in the video title. This heuristic drives the prompt
// template and the review schedule; the categorizer scores keywords
// independently and the two may disagree.
func IsLanguageLearning(t model.Transcript, keywords []string) bool {
	if t.Status != model.StatusSuccess {
		return false
	}

	switch t.Language {
	case "en", "en-US", "en-GB":
		return true
	}

	title := strings.ToLower(t.VideoTitle)
	for _, kw := range keywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
