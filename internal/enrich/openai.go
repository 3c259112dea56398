package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/model"
)

const classifySystemPrompt = `You label the sentiment of a single utterance from a phone call.
Answer with a JSON object: {"label": "POSITIVE"|"NEGATIVE"|"NEUTRAL"|"MIXED", "score": number}
where score is between -1 (most negative) and 1 (most positive).`

// OpenAIClassifier labels utterances with a chat completion model. It is an
// alternative to the HTTP service backend for installations without one.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier builds a classifier from an API key. An empty model
// selects gpt-4o-mini.
func NewOpenAIClassifier(apiKey, modelName string) *OpenAIClassifier {
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	return &OpenAIClassifier{client: openai.NewClient(apiKey), model: modelName}
}

type openaiVerdict struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

// Classify asks the model for a label and signed score. Rate-limit errors
// are surfaced as throttling so the worker pool retries them.
func (o *OpenAIClassifier) Classify(ctx context.Context, text, language string) (Classification, error) {
	user := text
	if language != "" {
		user = fmt.Sprintf("[language: %s]\n%s", language, text)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if apiErr, ok := err.(*openai.APIError); ok && apiErr.HTTPStatusCode == 429 {
			return Classification{}, fmt.Errorf("openai: %w", ErrThrottled)
		}
		return Classification{}, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Classification{}, fmt.Errorf("openai: empty response")
	}

	var v openaiVerdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &v); err != nil {
		return Classification{}, fmt.Errorf("openai decode: %w", err)
	}
	return Classification{
		Label: model.ParseSentimentLabel(strings.ToUpper(v.Label)),
		Score: v.Score,
	}, nil
}
