// Package categorizer assigns each video a category label by scoring
// configured keyword sets against its text.
package categorizer

import (
	"strings"

	"likesdigest/pkg/config"
	"likesdigest/pkg/model"
)

// transcriptPrefixChars caps how much transcript text joins the search
// string.
const transcriptPrefixChars = 500

type Categorizer struct {
	categories      config.CategoryList
	defaultCategory string
}

func New(categories config.CategoryList, defaultCategory string) *Categorizer {
	return &Categorizer{categories: categories, defaultCategory: defaultCategory}
}

// Categorize scores every configured category against the lowercased
// title + description (+ transcript prefix when available). The
// highest score wins; ties resolve to the earliest declared category;
// all-zero falls through to the default label.
func (c *Categorizer) Categorize(video model.Video, t *model.Transcript) string {
	var sb strings.Builder
	sb.WriteString(video.Title)
	sb.WriteString(" ")
	sb.WriteString(video.Description)
	if t != nil && t.Status == model.StatusSuccess {
		sb.WriteString(" ")
		sb.WriteString(prefix(t.Text, transcriptPrefixChars))
	}
	searchText := strings.ToLower(sb.String())

	best := c.defaultCategory
	bestScore := 0
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(searchText, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = cat.Name
			bestScore = score
		}
	}
	return best
}

// CategorizeBatch tags every video and groups the results by label.
// Group membership preserves input order.
func (c *Categorizer) CategorizeBatch(videos []model.Video, transcripts map[string]model.Transcript) map[string][]model.CategorizedVideo {
	grouped := make(map[string][]model.CategorizedVideo)
	for _, video := range videos {
		var t *model.Transcript
		if tr, ok := transcripts[video.ID]; ok {
			t = &tr
		}
		label := c.Categorize(video, t)
		grouped[label] = append(grouped[label], model.CategorizedVideo{Video: video, Category: label})
	}
	return grouped
}

func prefix(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
