package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one configured keyword bucket. Declaration order in the
// config file is significant: score ties resolve to the earliest
// declared category.
type Category struct {
	Name     string
	Keywords []string
}

// CategoryList preserves the YAML mapping order, which a plain Go map
// would lose.
type CategoryList []Category

func (c *CategoryList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("categories must be a mapping of name to keyword list")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var keywords []string
		if err := node.Content[i+1].Decode(&keywords); err != nil {
			return fmt.Errorf("category %q: %w", node.Content[i].Value, err)
		}
		*c = append(*c, Category{Name: node.Content[i].Value, Keywords: keywords})
	}
	return nil
}

type Config struct {
	YouTube struct {
		ClientID         string   `yaml:"client_id"`
		ClientSecret     string   `yaml:"client_secret"`
		TokenFile        string   `yaml:"token_file"`
		CaptionLanguages []string `yaml:"caption_languages"`
	} `yaml:"youtube"`

	LLM struct {
		APIKey        string `yaml:"api_key"`
		Model         string `yaml:"model"`
		BaseURL       string `yaml:"base_url"`
		MaxInputChars int    `yaml:"max_input_chars"`
	} `yaml:"llm"`

	Whisper struct {
		Enabled      bool   `yaml:"enabled"`
		Model        string `yaml:"model"`
		Image        string `yaml:"image"`
		FallbackOnly bool   `yaml:"fallback_only"`
		Language     string `yaml:"language"`
		YtDlpPath    string `yaml:"yt_dlp_path"`
	} `yaml:"whisper"`

	Categories       CategoryList `yaml:"categories"`
	DefaultCategory  string       `yaml:"default_category"`
	LearningKeywords []string     `yaml:"language_learning_keywords"`

	Output struct {
		Markdown bool   `yaml:"markdown_format"`
		Excel    bool   `yaml:"excel_export"`
		Dir      string `yaml:"dir"`
	} `yaml:"output"`

	DataDir string `yaml:"data_dir"`
}

// Load reads the YAML config at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.YouTube.TokenFile = "token.json"
	cfg.YouTube.CaptionLanguages = []string{"ko", "en"}
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.LLM.MaxInputChars = 4000
	cfg.Whisper.Model = "base"
	cfg.Whisper.Image = "ghcr.io/ggerganov/whisper.cpp:main"
	cfg.Whisper.FallbackOnly = true
	cfg.Whisper.Language = "auto"
	cfg.Whisper.YtDlpPath = "yt-dlp"
	cfg.DefaultCategory = "other"
	cfg.LearningKeywords = []string{"english", "영어", "toeic", "speaking", "grammar", "vocabulary"}
	cfg.Output.Markdown = true
	cfg.Output.Excel = true
	cfg.Output.Dir = "outputs"
	cfg.DataDir = "data"
	return cfg
}
