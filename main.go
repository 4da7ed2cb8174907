package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"likesdigest/pkg/categorizer"
	"likesdigest/pkg/config"
	"likesdigest/pkg/pipeline"
	"likesdigest/pkg/report"
	"likesdigest/pkg/store"
	"likesdigest/pkg/summarizer"
	"likesdigest/pkg/transcript"
	"likesdigest/pkg/youtube"
)

func main() {
	maxVideos := flag.Int("max-videos", 50, "maximum number of liked videos to collect")
	forceRefresh := flag.Bool("force-refresh", false, "recollect the liked-videos snapshot even if one is persisted")
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyEnvOverrides(cfg)

	if cfg.YouTube.ClientID == "" || cfg.YouTube.ClientSecret == "" {
		log.Fatal("YouTube OAuth client credentials are not set (YOUTUBE_CLIENT_ID / YOUTUBE_CLIENT_SECRET)")
	}
	if cfg.LLM.APIKey == "" {
		log.Fatal("LLM API key is not set (OPENAI_API_KEY)")
	}

	ctx := context.Background()

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to prepare data directory: %v", err)
	}

	auth := youtube.NewAuthenticator(cfg.YouTube.ClientID, cfg.YouTube.ClientSecret, cfg.YouTube.TokenFile)
	httpClient, err := auth.Client(ctx)
	if err != nil {
		log.Fatalf("YouTube authentication failed: %v", err)
	}
	collector := youtube.NewCollector(httpClient)

	var recognizer transcript.SpeechRecognizer
	if cfg.Whisper.Enabled {
		r := transcript.NewRecognizer(cfg.Whisper.Model, cfg.Whisper.Image, cfg.Whisper.Language, cfg.Whisper.YtDlpPath, st.AudioDir())
		if r.Available() {
			recognizer = r
			defer r.Close()
		} else {
			log.Println("Speech recognition enabled but unavailable (docker or yt-dlp missing); affected videos will be marked disabled")
		}
	}
	extractor := transcript.NewExtractor(
		transcript.NewCaptionClient(),
		recognizer,
		cfg.Whisper.Enabled,
		cfg.YouTube.CaptionLanguages,
		cfg.Whisper.FallbackOnly,
	)

	summ := summarizer.New(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.MaxInputChars, cfg.LearningKeywords)
	cat := categorizer.New(cfg.Categories, cfg.DefaultCategory)

	reports, err := report.NewGenerator(cfg.Output.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}

	p := pipeline.New(collector, extractor, summ, cat, st, reports, cfg.Output.Markdown, cfg.Output.Excel)

	result, err := p.Run(ctx, *maxVideos, *forceRefresh)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	printSummary(result)
}

// applyEnvOverrides lets secrets live in the environment instead of the
// config file.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("YOUTUBE_CLIENT_ID"); v != "" {
		cfg.YouTube.ClientID = v
	}
	if v := os.Getenv("YOUTUBE_CLIENT_SECRET"); v != "" {
		cfg.YouTube.ClientSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}

func printSummary(result *pipeline.Result) {
	fmt.Println()
	fmt.Println("=== Run summary ===")
	fmt.Printf("Videos collected:     %d\n", result.Videos)
	fmt.Printf("Transcripts:          %d (%d via speech recognition)\n", result.Transcripts, result.SpeechRecognized)
	fmt.Printf("Missing captions:     %d\n", result.MissingCaptions)
	fmt.Printf("Summaries:            %d (%d language learning)\n", result.Summaries, result.LanguageLearning)

	names := make([]string, 0, len(result.Categories))
	for name := range result.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Categories:")
	for _, name := range names {
		fmt.Printf("  %-16s %d\n", name, result.Categories[name])
	}

	fmt.Println("Reports:")
	for _, f := range result.ReportFiles {
		fmt.Printf("  %s\n", f)
	}
}
