package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"likesdigest/pkg/model"
)

type htmlSection struct {
	Name      string
	Summaries []model.Summary
}

type htmlView struct {
	Date          string
	Total         int
	Learning      int
	Recognized    int
	CategoryCount int
	Sections      []htmlSection
}

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"typeLabel": typeLabel,
	"isLearning": func(s model.Summary) bool {
		return s.Type == model.TypeLanguageLearning
	},
	"isRecognized": func(s model.Summary) bool {
		return s.Method == model.MethodWhisper
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>YouTube Likes Digest - {{.Date}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; background: #f0f2f5; padding: 20px; line-height: 1.6; }
.container { max-width: 1100px; margin: 0 auto; background: white; border-radius: 12px; padding: 32px; box-shadow: 0 4px 16px rgba(0,0,0,0.08); }
h1 { color: #4458c7; margin-bottom: 8px; text-align: center; }
.date { text-align: center; color: #666; margin-bottom: 24px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 16px; margin-bottom: 32px; }
.stat-card { background: #4458c7; color: white; padding: 16px; border-radius: 8px; text-align: center; }
.stat-number { font-size: 2em; font-weight: bold; }
.stat-label { font-size: 0.85em; opacity: 0.9; }
.filter-buttons { display: flex; gap: 8px; margin-bottom: 24px; flex-wrap: wrap; }
.filter-btn { padding: 8px 18px; border: 2px solid #4458c7; background: white; color: #4458c7; border-radius: 20px; cursor: pointer; font-weight: bold; }
.filter-btn.active { background: #4458c7; color: white; }
.category-section { margin-bottom: 32px; }
.category-header { background: #f8f9fa; padding: 12px 16px; border-radius: 8px; margin-bottom: 16px; display: flex; justify-content: space-between; }
.category-title { font-size: 1.3em; font-weight: bold; }
.video-card { border: 1px solid #e4e6eb; border-radius: 8px; padding: 20px; margin-bottom: 16px; }
.video-title a { color: #4458c7; text-decoration: none; font-size: 1.15em; font-weight: bold; }
.badge { padding: 3px 10px; border-radius: 12px; font-size: 0.75em; font-weight: bold; margin-left: 6px; }
.badge-learning { background: #d4edda; color: #155724; }
.badge-general { background: #cce5ff; color: #004085; }
.badge-whisper { background: #fff3cd; color: #856404; }
.video-meta { color: #666; font-size: 0.9em; margin: 8px 0; }
.video-summary { background: #f8f9fa; padding: 16px; border-radius: 6px; border-left: 3px solid #4458c7; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="container">
<h1>YouTube Likes Digest</h1>
<div class="date">Generated {{.Date}}</div>
<div class="stats">
<div class="stat-card"><div class="stat-number">{{.Total}}</div><div class="stat-label">Summarized videos</div></div>
<div class="stat-card"><div class="stat-number">{{.Learning}}</div><div class="stat-label">Language learning</div></div>
<div class="stat-card"><div class="stat-number">{{.Recognized}}</div><div class="stat-label">Speech recognized</div></div>
<div class="stat-card"><div class="stat-number">{{.CategoryCount}}</div><div class="stat-label">Categories</div></div>
</div>
<div class="filter-buttons">
<button class="filter-btn active" onclick="filterVideos(event, 'all')">All</button>
<button class="filter-btn" onclick="filterVideos(event, 'learning')">Language learning</button>
<button class="filter-btn" onclick="filterVideos(event, 'general')">General</button>
<button class="filter-btn" onclick="filterVideos(event, 'whisper')">Speech recognized</button>
</div>
{{range .Sections}}
<div class="category-section">
<div class="category-header"><div class="category-title">{{.Name}}</div><div>{{len .Summaries}} video(s)</div></div>
{{range .Summaries}}
<div class="video-card" data-type="{{.Type}}" data-method="{{.Method}}">
<div class="video-title"><a href="{{.VideoURL}}" target="_blank">{{.VideoTitle}}</a>
{{if isLearning .}}<span class="badge badge-learning">{{typeLabel .Type}}</span>{{else}}<span class="badge badge-general">{{typeLabel .Type}}</span>{{end}}
{{if isRecognized .}}<span class="badge badge-whisper">Speech recognized</span>{{end}}
</div>
<div class="video-meta">{{.Channel}}</div>
<div class="video-summary">{{.Summary}}</div>
</div>
{{end}}
</div>
{{end}}
</div>
<script>
function filterVideos(event, type) {
  document.querySelectorAll('.filter-btn').forEach(function(btn) { btn.classList.remove('active'); });
  event.target.classList.add('active');
  document.querySelectorAll('.video-card').forEach(function(card) {
    var show = type === 'all' ||
      (type === 'learning' && card.dataset.type === 'language_learning') ||
      (type === 'general' && card.dataset.type === 'general') ||
      (type === 'whisper' && card.dataset.method === 'whisper');
    card.style.display = show ? 'block' : 'none';
  });
}
</script>
</body>
</html>
`))

// HTML writes the self-contained interactive report page.
func (g *Generator) HTML(data Data) (string, error) {
	path := filepath.Join(g.outputDir, data.datePrefix()+"_summary.html")

	success := data.successSummaries()
	view := htmlView{
		Date:          data.GeneratedAt.Format("2006-01-02 15:04"),
		Total:         len(success),
		Learning:      len(data.learningSummaries()),
		CategoryCount: len(data.Categories),
	}
	for _, s := range success {
		if s.Method == model.MethodWhisper {
			view.Recognized++
		}
	}
	for _, name := range data.sortedCategories() {
		summaries := data.summariesFor(name)
		if len(summaries) == 0 {
			continue
		}
		view.Sections = append(view.Sections, htmlSection{Name: name, Summaries: summaries})
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	if err := htmlTmpl.Execute(f, view); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return path, nil
}
