package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"likesdigest/pkg/model"
)

// Statistics is the JSON run summary.
type Statistics struct {
	TotalSummaries   int            `json:"total_summaries"`
	SuccessSummaries int            `json:"success_summaries"`
	LanguageLearning int            `json:"language_learning"`
	SpeechRecognized int            `json:"speech_recognized"`
	MissingCaptions  int            `json:"missing_captions"`
	ByStatus         map[string]int `json:"by_status"`
	ByType           map[string]int `json:"by_type"`
	ByCategory       map[string]int `json:"by_category"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

// Stats writes statistics.json and returns the computed numbers.
func (g *Generator) Stats(data Data) (Statistics, error) {
	stats := Statistics{
		TotalSummaries:  len(data.Summaries),
		MissingCaptions: data.MissingCaptions,
		ByStatus:        make(map[string]int),
		ByType:          make(map[string]int),
		ByCategory:      make(map[string]int),
		GeneratedAt:     data.GeneratedAt,
	}

	for _, s := range data.Summaries {
		stats.ByStatus[s.Status]++
		if s.Status != model.StatusSuccess {
			continue
		}
		stats.SuccessSummaries++
		stats.ByType[s.Type]++
		if s.Type == model.TypeLanguageLearning {
			stats.LanguageLearning++
		}
		if s.Method == model.MethodWhisper {
			stats.SpeechRecognized++
		}
	}
	for name, videos := range data.Categories {
		stats.ByCategory[name] = len(videos)
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return Statistics{}, err
	}
	path := filepath.Join(g.outputDir, "statistics.json")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return Statistics{}, fmt.Errorf("write statistics: %w", err)
	}
	return stats, nil
}
