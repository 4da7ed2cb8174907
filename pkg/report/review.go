package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReviewSchedule writes the spaced-repetition checklist for
// language-learning summaries: one dated section per offset in
// {1,3,7,14,30} days from the generation instant, each listing every
// language-learning video. Returns an empty path when there is
// nothing to review.
func (g *Generator) ReviewSchedule(data Data) (string, error) {
	learning := data.learningSummaries()
	if len(learning) == 0 {
		return "", nil
	}

	path := filepath.Join(g.outputDir, "review_schedule.md")

	var b strings.Builder
	b.WriteString("# Language-learning review schedule\n\n")
	b.WriteString("*Spaced-repetition checklist for the language-learning videos in this run.*\n\n")

	for _, offset := range reviewOffsets {
		date := data.GeneratedAt.AddDate(0, 0, offset)
		fmt.Fprintf(&b, "## %s (D+%d)\n\n", date.Format("2006-01-02"), offset)
		for _, s := range learning {
			fmt.Fprintf(&b, "- [ ] [%s](%s)\n", s.VideoTitle, s.VideoURL)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write review schedule: %w", err)
	}
	return path, nil
}
