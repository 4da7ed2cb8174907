// Package pipeline runs the five stages in dependency order:
// collect -> extract -> summarize -> categorize -> report. Execution
// is fully sequential; per-item failures are recorded and skipped,
// stage-level failures abort the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"likesdigest/pkg/categorizer"
	"likesdigest/pkg/model"
	"likesdigest/pkg/report"
	"likesdigest/pkg/store"
)

// VideoSource lists the account's liked videos.
type VideoSource interface {
	LikedVideos(ctx context.Context, max int) ([]model.Video, error)
}

// TranscriptExtractor produces a transcript record per video.
type TranscriptExtractor interface {
	Extract(ctx context.Context, video model.Video) model.Transcript
}

// SummaryGenerator produces a summary record per success transcript.
type SummaryGenerator interface {
	Summarize(ctx context.Context, t model.Transcript) model.Summary
}

// Result is the run's console summary.
type Result struct {
	Videos           int
	Transcripts      int
	SpeechRecognized int
	Summaries        int
	LanguageLearning int
	MissingCaptions  int
	Categories       map[string]int
	ReportFiles      []string
}

type Pipeline struct {
	source      VideoSource
	extractor   TranscriptExtractor
	summarizer  SummaryGenerator
	categorizer *categorizer.Categorizer
	store       *store.Store
	reports     *report.Generator

	markdownOn bool
	excelOn    bool

	now func() time.Time
}

func New(source VideoSource, extractor TranscriptExtractor, summarizer SummaryGenerator,
	cat *categorizer.Categorizer, st *store.Store, reports *report.Generator,
	markdownOn, excelOn bool) *Pipeline {
	return &Pipeline{
		source:      source,
		extractor:   extractor,
		summarizer:  summarizer,
		categorizer: cat,
		store:       st,
		reports:     reports,
		markdownOn:  markdownOn,
		excelOn:     excelOn,
		now:         time.Now,
	}
}

// SetNow fixes the clock (for testing).
func (p *Pipeline) SetNow(now func() time.Time) {
	p.now = now
}

// Run executes one full pass. forceRefresh bypasses the persisted
// collection snapshot; every other memoization (per-id transcript and
// summary files) always applies.
func (p *Pipeline) Run(ctx context.Context, maxVideos int, forceRefresh bool) (*Result, error) {
	log.Println("[1/5] Collecting liked videos")
	videos, err := p.collect(ctx, maxVideos, forceRefresh)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("no liked videos collected")
	}

	log.Printf("[2/5] Extracting transcripts for %d video(s)", len(videos))
	transcripts, byID, err := p.extract(ctx, videos)
	if err != nil {
		return nil, err
	}

	log.Println("[3/5] Generating summaries")
	summaries, err := p.summarize(ctx, transcripts)
	if err != nil {
		return nil, err
	}

	log.Println("[4/5] Categorizing videos")
	grouped := p.categorizer.CategorizeBatch(videos, byID)

	log.Println("[5/5] Generating reports")
	result := p.buildResult(videos, transcripts, summaries, grouped)
	if err := p.report(summaries, grouped, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) collect(ctx context.Context, maxVideos int, forceRefresh bool) ([]model.Video, error) {
	if !forceRefresh {
		videos, err := p.store.LoadVideos()
		if err != nil {
			return nil, err
		}
		if len(videos) > 0 {
			log.Printf("Reusing persisted snapshot (%d videos); pass -force-refresh to recollect", len(videos))
			return videos, nil
		}
	}

	videos, err := p.source.LikedVideos(ctx, maxVideos)
	if err != nil {
		return nil, fmt.Errorf("collect liked videos: %w", err)
	}
	if err := p.store.SaveVideos(videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (p *Pipeline) extract(ctx context.Context, videos []model.Video) ([]model.Transcript, map[string]model.Transcript, error) {
	transcripts := make([]model.Transcript, 0, len(videos))
	byID := make(map[string]model.Transcript, len(videos))

	for i, video := range videos {
		t, ok, err := p.store.LoadTranscript(video.ID)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			log.Printf("  [%d/%d] extracting %s", i+1, len(videos), video.ID)
			t = p.extractor.Extract(ctx, video)
			if err := p.store.SaveTranscript(t); err != nil {
				return nil, nil, err
			}
		}
		transcripts = append(transcripts, t)
		byID[video.ID] = t
	}

	success := 0
	for _, t := range transcripts {
		if t.Status == model.StatusSuccess {
			success++
		}
	}
	log.Printf("Extracted %d/%d transcript(s)", success, len(videos))
	return transcripts, byID, nil
}

func (p *Pipeline) summarize(ctx context.Context, transcripts []model.Transcript) ([]model.Summary, error) {
	var summaries []model.Summary

	for _, t := range transcripts {
		if t.Status != model.StatusSuccess {
			continue
		}

		sum, ok, err := p.store.LoadSummary(t.VideoID)
		if err != nil {
			return nil, err
		}
		if !ok {
			sum = p.summarizer.Summarize(ctx, t)
			if sum.Status != model.StatusSuccess {
				log.Printf("  summary failed for %s: %s", t.VideoID, sum.Error)
			}
			if err := p.store.SaveSummary(sum); err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, sum)
	}

	return summaries, nil
}

func (p *Pipeline) report(summaries []model.Summary, grouped map[string][]model.CategorizedVideo, result *Result) error {
	data := report.Data{
		Summaries:       summaries,
		Categories:      grouped,
		MissingCaptions: result.MissingCaptions,
		GeneratedAt:     p.now(),
	}

	addFile := func(path string, err error) error {
		if err != nil {
			return err
		}
		if path != "" {
			result.ReportFiles = append(result.ReportFiles, path)
		}
		return nil
	}

	if p.markdownOn {
		if err := addFile(p.reports.Markdown(data)); err != nil {
			return err
		}
	}
	if p.excelOn {
		if err := addFile(p.reports.Excel(data)); err != nil {
			return err
		}
	}
	if err := addFile(p.reports.HTML(data)); err != nil {
		return err
	}
	if err := addFile(p.reports.ReviewSchedule(data)); err != nil {
		return err
	}
	if _, err := p.reports.Stats(data); err != nil {
		return err
	}
	return nil
}

func (p *Pipeline) buildResult(videos []model.Video, transcripts []model.Transcript,
	summaries []model.Summary, grouped map[string][]model.CategorizedVideo) *Result {
	result := &Result{
		Videos:     len(videos),
		Categories: make(map[string]int, len(grouped)),
	}
	for _, t := range transcripts {
		if t.Status == model.StatusSuccess {
			result.Transcripts++
			if t.Method == model.MethodWhisper {
				result.SpeechRecognized++
			}
		} else {
			result.MissingCaptions++
		}
	}
	for _, s := range summaries {
		if s.Status == model.StatusSuccess {
			result.Summaries++
			if s.Type == model.TypeLanguageLearning {
				result.LanguageLearning++
			}
		}
	}
	for name, vids := range grouped {
		result.Categories[name] = len(vids)
	}
	return result
}
