package summarizer

import (
	"fmt"

	"likesdigest/pkg/model"
)

func generalPrompt(t model.Transcript, text string) string {
	return fmt.Sprintf(`The following is the transcript of a YouTube video.

Title: %s
Channel: %s

Transcript:
%s

Summarize the core content of this video in 3-5 lines. Keep it concise and focus on the main points and key message.`, t.VideoTitle, t.Channel, text)
}

func languageLearningPrompt(t model.Transcript, text string) string {
	return fmt.Sprintf(`The following is the transcript of a language-learning YouTube video.

Title: %s
Channel: %s

Transcript:
%s

Analyze the video and write up the result in this format:

1. **Core topic** (1-2 lines)
2. **Key expressions** (5 of them, each with an example sentence)
3. **Grammar points** (if any)
4. **Study tips** (practical advice)

Be specific so the notes stay useful when the learner reviews them later.`, t.VideoTitle, t.Channel, text)
}
