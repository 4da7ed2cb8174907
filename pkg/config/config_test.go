package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ko", "en"}, cfg.YouTube.CaptionLanguages)
	assert.Equal(t, 4000, cfg.LLM.MaxInputChars)
	assert.True(t, cfg.Whisper.FallbackOnly)
	assert.False(t, cfg.Whisper.Enabled)
	assert.Equal(t, "other", cfg.DefaultCategory)
	assert.True(t, cfg.Output.Markdown)
	assert.True(t, cfg.Output.Excel)
	assert.Equal(t, "data", cfg.DataDir)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
youtube:
  client_id: abc
  client_secret: xyz
  caption_languages: [en]
llm:
  model: test-model
  base_url: http://localhost:9999/v1
whisper:
  enabled: true
  fallback_only: false
output:
  markdown_format: false
  excel_export: true
default_category: misc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.YouTube.ClientID)
	assert.Equal(t, []string{"en"}, cfg.YouTube.CaptionLanguages)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.True(t, cfg.Whisper.Enabled)
	assert.False(t, cfg.Whisper.FallbackOnly)
	assert.False(t, cfg.Output.Markdown)
	assert.True(t, cfg.Output.Excel)
	assert.Equal(t, "misc", cfg.DefaultCategory)
	// Untouched fields keep defaults.
	assert.Equal(t, "token.json", cfg.YouTube.TokenFile)
	assert.Equal(t, "yt-dlp", cfg.Whisper.YtDlpPath)
}

func TestCategoryList_PreservesDeclarationOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
categories:
  tech: [algorithm, coding]
  life: [diary, vlog]
  music: [song, concert]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Categories, 3)
	assert.Equal(t, "tech", cfg.Categories[0].Name)
	assert.Equal(t, "life", cfg.Categories[1].Name)
	assert.Equal(t, "music", cfg.Categories[2].Name)
	assert.Equal(t, []string{"diary", "vlog"}, cfg.Categories[1].Keywords)
}

func TestCategoryList_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [tech, life]\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories must be a mapping")
}
