// Package store persists pipeline records as flat JSON files under the
// data directory. File existence is the pipeline's memoization: a
// stage re-reads a record instead of recomputing it whenever the file
// is present, with no freshness check.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"likesdigest/pkg/model"
)

const (
	likesFile      = "likes.json"
	transcriptsDir = "transcripts"
	summariesDir   = "summaries"
	audioDir       = "audio"
)

type Store struct {
	dir string
}

// New creates the data directory layout under dir.
func New(dir string) (*Store, error) {
	for _, sub := range []string{"", transcriptsDir, summariesDir, audioDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Store{dir: dir}, nil
}

// AudioDir is where the recognizer drops downloaded audio files.
func (s *Store) AudioDir() string {
	return filepath.Join(s.dir, audioDir)
}

// SaveVideos overwrites the collection snapshot wholesale.
func (s *Store) SaveVideos(videos []model.Video) error {
	return writeJSON(filepath.Join(s.dir, likesFile), videos)
}

// LoadVideos returns the persisted snapshot, or nil when none exists.
func (s *Store) LoadVideos() ([]model.Video, error) {
	var videos []model.Video
	ok, err := readJSON(filepath.Join(s.dir, likesFile), &videos)
	if err != nil || !ok {
		return nil, err
	}
	return videos, nil
}

// SaveTranscript persists a success transcript keyed by (id, method).
// Non-success records are not written; their absence is what lets a
// later run retry extraction.
func (s *Store) SaveTranscript(t model.Transcript) error {
	if t.Status != model.StatusSuccess {
		return nil
	}
	name := fmt.Sprintf("%s_%s.json", t.VideoID, t.Method)
	return writeJSON(filepath.Join(s.dir, transcriptsDir, name), t)
}

// LoadTranscript returns the persisted transcript for id, preferring
// platform captions over speech recognition when both exist.
func (s *Store) LoadTranscript(id string) (model.Transcript, bool, error) {
	for _, method := range []string{model.MethodCaptions, model.MethodWhisper} {
		var t model.Transcript
		path := filepath.Join(s.dir, transcriptsDir, fmt.Sprintf("%s_%s.json", id, method))
		ok, err := readJSON(path, &t)
		if err != nil {
			return model.Transcript{}, false, err
		}
		if ok {
			return t, true, nil
		}
	}
	return model.Transcript{}, false, nil
}

// SaveSummary persists a success summary keyed by video id.
func (s *Store) SaveSummary(sum model.Summary) error {
	if sum.Status != model.StatusSuccess {
		return nil
	}
	return writeJSON(filepath.Join(s.dir, summariesDir, sum.VideoID+".json"), sum)
}

// LoadSummary returns the persisted summary for id, if any.
func (s *Store) LoadSummary(id string) (model.Summary, bool, error) {
	var sum model.Summary
	ok, err := readJSON(filepath.Join(s.dir, summariesDir, id+".json"), &sum)
	return sum, ok, err
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}
