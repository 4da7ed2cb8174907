// Package report renders the joined summary and category data into
// the run's output files: Markdown, Excel, HTML, a spaced-repetition
// review checklist and a JSON statistics dump.
package report

import (
	"fmt"
	"os"
	"sort"
	"time"

	"likesdigest/pkg/model"
)

// reviewOffsets are the spaced-repetition day offsets.
var reviewOffsets = []int{1, 3, 7, 14, 30}

// Data is everything a generator needs for one run. Reports silently
// omit items that never reached success status.
type Data struct {
	Summaries       []model.Summary
	Categories      map[string][]model.CategorizedVideo
	MissingCaptions int
	GeneratedAt     time.Time
}

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Generator{outputDir: outputDir}, nil
}

func (d Data) datePrefix() string {
	return d.GeneratedAt.Format("20060102")
}

func (d Data) successSummaries() []model.Summary {
	var out []model.Summary
	for _, s := range d.Summaries {
		if s.Status == model.StatusSuccess {
			out = append(out, s)
		}
	}
	return out
}

func (d Data) learningSummaries() []model.Summary {
	var out []model.Summary
	for _, s := range d.successSummaries() {
		if s.Type == model.TypeLanguageLearning {
			out = append(out, s)
		}
	}
	return out
}

func (d Data) sortedCategories() []string {
	names := make([]string, 0, len(d.Categories))
	for name := range d.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// summariesFor returns the success summaries whose video landed in the
// given category.
func (d Data) summariesFor(category string) []model.Summary {
	ids := make(map[string]bool, len(d.Categories[category]))
	for _, v := range d.Categories[category] {
		ids[v.ID] = true
	}

	var out []model.Summary
	for _, s := range d.successSummaries() {
		if ids[s.VideoID] {
			out = append(out, s)
		}
	}
	return out
}

// categoryOf maps a video id back to its assigned label.
func (d Data) categoryOf(videoID string) string {
	for name, videos := range d.Categories {
		for _, v := range videos {
			if v.ID == videoID {
				return name
			}
		}
	}
	return ""
}

func typeLabel(summaryType string) string {
	if summaryType == model.TypeLanguageLearning {
		return "Language learning"
	}
	return "General"
}
