package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markdown writes the per-category digest document and returns its
// path.
func (g *Generator) Markdown(data Data) (string, error) {
	path := filepath.Join(g.outputDir, data.datePrefix()+"_summary.md")

	var b strings.Builder
	b.WriteString("# YouTube Likes Digest\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Total summaries**: %d\n\n", len(data.Summaries))

	b.WriteString("## Category distribution\n\n")
	for _, name := range data.sortedCategories() {
		fmt.Fprintf(&b, "- **%s**: %d\n", name, len(data.Categories[name]))
	}
	b.WriteString("\n---\n\n")

	if data.MissingCaptions > 0 {
		b.WriteString("## Notice\n\n")
		fmt.Fprintf(&b, "%d video(s) had no extractable captions and were not summarized.\n", data.MissingCaptions)
		b.WriteString("Videos with captions (or with speech recognition enabled) will be picked up on the next run.\n\n")
	}

	success := data.successSummaries()
	if len(success) == 0 {
		b.WriteString("No videos could be summarized in this run.\n")
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return "", fmt.Errorf("write markdown report: %w", err)
		}
		return path, nil
	}

	for _, name := range data.sortedCategories() {
		summaries := data.summariesFor(name)
		if len(summaries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", name)
		for i, s := range summaries {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, s.VideoTitle)
			fmt.Fprintf(&b, "**Channel**: %s  \n", s.Channel)
			fmt.Fprintf(&b, "**Link**: [%s](%s)  \n", s.VideoURL, s.VideoURL)
			fmt.Fprintf(&b, "**Type**: %s\n\n", typeLabel(s.Type))
			b.WriteString(s.Summary)
			b.WriteString("\n\n---\n\n")
		}
	}

	if learning := data.learningSummaries(); len(learning) > 0 {
		b.WriteString("## Language-learning content (for review)\n\n")
		b.WriteString("*Collected separately so it can be revisited for spaced repetition.*\n\n")
		for i, s := range learning {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, s.VideoTitle)
			fmt.Fprintf(&b, "[Watch](%s)\n\n", s.VideoURL)
			b.WriteString(s.Summary)
			b.WriteString("\n\n---\n\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown report: %w", err)
	}
	return path, nil
}
