// Package summarizer turns transcripts into short AI-generated
// summaries through an OpenAI-compatible chat-completions API.
package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"likesdigest/pkg/model"
	"likesdigest/pkg/transcript"
)

const (
	generalMaxTokens  = 1024
	learningMaxTokens = 2048

	requestTimeout = 120 * time.Second
)

type Summarizer struct {
	client           openai.Client
	model            string
	maxInputChars    int
	learningKeywords []string
}

func New(apiKey, baseURL, modelID string, maxInputChars int, learningKeywords []string) *Summarizer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Summarizer{
		client:           openai.NewClient(opts...),
		model:            modelID,
		maxInputChars:    maxInputChars,
		learningKeywords: learningKeywords,
	}
}

// Summarize issues exactly one generation request for a success
// transcript. API failures come back as an error-status record with
// the raw error message; there is no retry.
func (s *Summarizer) Summarize(ctx context.Context, t model.Transcript) model.Summary {
	sum := model.Summary{
		VideoID:    t.VideoID,
		VideoTitle: t.VideoTitle,
		VideoURL:   t.VideoURL,
		Channel:    t.Channel,
		Method:     t.Method,
	}

	text := truncate(t.Text, s.maxInputChars)

	var prompt string
	var maxTokens int64
	if transcript.IsLanguageLearning(t, s.learningKeywords) {
		sum.Type = model.TypeLanguageLearning
		prompt = languageLearningPrompt(t, text)
		maxTokens = learningMaxTokens
	} else {
		sum.Type = model.TypeGeneral
		prompt = generalPrompt(t, text)
		maxTokens = generalMaxTokens
	}

	content, err := s.complete(ctx, prompt, maxTokens)
	if err != nil {
		sum.Status = model.StatusError
		sum.Error = err.Error()
		return sum
	}

	sum.Summary = content
	sum.Status = model.StatusSuccess
	return sum
}

func (s *Summarizer) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(s.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// truncate hard-caps the transcript at n characters before prompting.
// No chunking, no summarization of summaries.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
