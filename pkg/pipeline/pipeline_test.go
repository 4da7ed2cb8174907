package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"likesdigest/pkg/categorizer"
	"likesdigest/pkg/config"
	"likesdigest/pkg/model"
	"likesdigest/pkg/report"
	"likesdigest/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	videos []model.Video
	calls  int
}

func (f *fakeSource) LikedVideos(_ context.Context, _ int) ([]model.Video, error) {
	f.calls++
	return f.videos, nil
}

type fakeExtractor struct {
	transcripts map[string]model.Transcript
	calls       map[string]int
}

func (f *fakeExtractor) Extract(_ context.Context, video model.Video) model.Transcript {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[video.ID]++
	return f.transcripts[video.ID]
}

type fakeSummarizer struct {
	calls map[string]int
}

func (f *fakeSummarizer) Summarize(_ context.Context, t model.Transcript) model.Summary {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[t.VideoID]++
	return model.Summary{
		VideoID:    t.VideoID,
		VideoTitle: t.VideoTitle,
		VideoURL:   t.VideoURL,
		Channel:    t.Channel,
		Type:       model.TypeGeneral,
		Method:     t.Method,
		Summary:    "summary of " + t.VideoTitle,
		Status:     model.StatusSuccess,
	}
}

func testCategories() config.CategoryList {
	return config.CategoryList{
		{Name: "tech", Keywords: []string{"algorithm", "coding"}},
		{Name: "life", Keywords: []string{"diary", "routine"}},
	}
}

func newTestPipeline(t *testing.T, src *fakeSource, ext *fakeExtractor, sum *fakeSummarizer) (*Pipeline, string, string) {
	t.Helper()
	dataDir := t.TempDir()
	outDir := t.TempDir()

	st, err := store.New(dataDir)
	require.NoError(t, err)
	gen, err := report.NewGenerator(outDir)
	require.NoError(t, err)

	cat := categorizer.New(testCategories(), "other")
	p := New(src, ext, sum, cat, st, gen, true, false)
	p.SetNow(func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) })
	return p, dataDir, outDir
}

func TestRun_EndToEnd(t *testing.T) {
	src := &fakeSource{videos: []model.Video{
		{ID: "v1", Title: "Algorithm basics", Channel: "ch1", URL: "https://www.youtube.com/watch?v=v1"},
		{ID: "v2", Title: "My daily diary", Channel: "ch2", URL: "https://www.youtube.com/watch?v=v2"},
	}}
	ext := &fakeExtractor{transcripts: map[string]model.Transcript{
		"v1": {VideoID: "v1", VideoTitle: "Algorithm basics", Status: model.StatusNoTranscript},
		"v2": {
			VideoID: "v2", VideoTitle: "My daily diary", Channel: "ch2",
			VideoURL: "https://www.youtube.com/watch?v=v2",
			Method:   model.MethodCaptions, Text: "today I kept my diary", Status: model.StatusSuccess,
		},
	}}
	sum := &fakeSummarizer{}

	p, _, outDir := newTestPipeline(t, src, ext, sum)

	result, err := p.Run(context.Background(), 50, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Videos)
	assert.Equal(t, 1, result.Transcripts)
	assert.Equal(t, 1, result.MissingCaptions)
	assert.Equal(t, 1, result.Summaries)
	assert.Equal(t, 1, result.Categories["tech"])
	assert.Equal(t, 1, result.Categories["life"])

	assert.Equal(t, 1, sum.calls["v2"])
	assert.Zero(t, sum.calls["v1"], "no summary request without a transcript")

	content, err := os.ReadFile(filepath.Join(outDir, "20250601_summary.md"))
	require.NoError(t, err)
	md := string(content)
	assert.Contains(t, md, "1 video(s) had no extractable captions")
	assert.Contains(t, md, "summary of My daily diary")

	_, err = os.Stat(filepath.Join(outDir, "statistics.json"))
	assert.NoError(t, err)

	for _, f := range result.ReportFiles {
		assert.True(t, strings.HasPrefix(f, outDir))
	}
}

func TestRun_ReusesPersistedRecords(t *testing.T) {
	src := &fakeSource{videos: []model.Video{
		{ID: "v2", Title: "My daily diary", Channel: "ch2", URL: "https://www.youtube.com/watch?v=v2"},
	}}
	ext := &fakeExtractor{transcripts: map[string]model.Transcript{
		"v2": {
			VideoID: "v2", VideoTitle: "My daily diary", Channel: "ch2",
			Method: model.MethodCaptions, Text: "today I kept my diary", Status: model.StatusSuccess,
		},
	}}
	sum := &fakeSummarizer{}

	p, _, _ := newTestPipeline(t, src, ext, sum)

	_, err := p.Run(context.Background(), 50, false)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), 50, false)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls, "snapshot reused on the second run")
	assert.Equal(t, 1, ext.calls["v2"], "transcript file short-circuits extraction")
	assert.Equal(t, 1, sum.calls["v2"], "summary file short-circuits generation")
}

func TestRun_ForceRefreshRecollectsOnly(t *testing.T) {
	src := &fakeSource{videos: []model.Video{
		{ID: "v2", Title: "My daily diary", Channel: "ch2"},
	}}
	ext := &fakeExtractor{transcripts: map[string]model.Transcript{
		"v2": {VideoID: "v2", VideoTitle: "My daily diary", Method: model.MethodCaptions, Text: "hello", Status: model.StatusSuccess},
	}}
	sum := &fakeSummarizer{}

	p, _, _ := newTestPipeline(t, src, ext, sum)

	_, err := p.Run(context.Background(), 50, false)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), 50, true)
	require.NoError(t, err)

	assert.Equal(t, 2, src.calls, "force refresh bypasses the snapshot")
	assert.Equal(t, 1, ext.calls["v2"], "per-id transcripts still reused")
	assert.Equal(t, 1, sum.calls["v2"], "per-id summaries still reused")
}

func TestRun_FailedExtractionRetriedNextRun(t *testing.T) {
	src := &fakeSource{videos: []model.Video{{ID: "v1", Title: "Algorithm basics"}}}
	ext := &fakeExtractor{transcripts: map[string]model.Transcript{
		"v1": {VideoID: "v1", VideoTitle: "Algorithm basics", Status: model.StatusNoTranscript},
	}}
	sum := &fakeSummarizer{}

	p, _, _ := newTestPipeline(t, src, ext, sum)

	_, err := p.Run(context.Background(), 50, false)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), 50, false)
	require.NoError(t, err)

	assert.Equal(t, 2, ext.calls["v1"], "non-success records are not persisted, so extraction retries")
}

func TestRun_NoVideos(t *testing.T) {
	src := &fakeSource{}
	p, _, _ := newTestPipeline(t, src, &fakeExtractor{}, &fakeSummarizer{})

	_, err := p.Run(context.Background(), 50, false)
	assert.Error(t, err)
}
