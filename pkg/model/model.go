package model

import "time"

// Transcript extraction outcome.
const (
	StatusSuccess      = "success"
	StatusNoTranscript = "no_transcript"
	StatusDisabled     = "disabled"
	StatusError        = "error"
)

// How a transcript was obtained.
const (
	MethodCaptions = "captions"
	MethodWhisper  = "whisper"
)

// Summary content type.
const (
	TypeGeneral          = "general"
	TypeLanguageLearning = "language_learning"
)

// Video is one liked video as collected from the platform listing.
// Immutable after collection; the whole snapshot is overwritten on the
// next refresh.
type Video struct {
	ID          string    `json:"video_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Channel     string    `json:"channel"`
	PublishedAt string    `json:"published_at"`
	Duration    string    `json:"duration"`
	ViewCount   int64     `json:"view_count"`
	LikeCount   int64     `json:"like_count"`
	URL         string    `json:"url"`
	CollectedAt time.Time `json:"collected_at"`
}

// Segment is one timed caption line.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the extraction result for one video. One record per
// (video, method) pair is persisted; captions take priority over
// whisper on reload.
type Transcript struct {
	VideoID    string    `json:"video_id"`
	VideoTitle string    `json:"video_title"`
	VideoURL   string    `json:"video_url"`
	Channel    string    `json:"channel"`
	Language   string    `json:"language"`
	Method     string    `json:"method"`
	Text       string    `json:"text"`
	Segments   []Segment `json:"segments,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// Summary is the generated résumé for one video. Its presence on disk
// short-circuits regeneration regardless of staleness.
type Summary struct {
	VideoID    string `json:"video_id"`
	VideoTitle string `json:"video_title"`
	VideoURL   string `json:"video_url"`
	Channel    string `json:"channel"`
	Type       string `json:"type"`
	Method     string `json:"method,omitempty"`
	Summary    string `json:"summary"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// CategorizedVideo pairs a video with its assigned category label.
// Recomputed every run, never persisted on its own.
type CategorizedVideo struct {
	Video
	Category string `json:"category"`
}
