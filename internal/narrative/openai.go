package narrative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var errEmptyCompletion = errors.New("empty completion")

// completer is the slice of a chat API the narrator needs.
type completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

type chatCompleter struct {
	client openai.Client
	model  string
}

func (c *chatCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

// OpenAINarrator asks a chat model for lines and falls back to static text
// on any failure.
type OpenAINarrator struct {
	llm completer
}

// NewOpenAINarrator builds a narrator for the given API key and model.
// An empty key yields the static narrator.
func NewOpenAINarrator(apiKey, model string) Narrator {
	if strings.TrimSpace(apiKey) == "" {
		return Static{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAINarrator{llm: &chatCompleter{client: client, model: model}}
}

func (n *OpenAINarrator) Flavor(ctx context.Context, progress int) string {
	prompt := fmt.Sprintf(
		"Write a very short, cryptic and terrifying sentence that a faceless stalker would leave on a note in a dark forest. "+
			"The player has found %d of %d pages. Keep it under 10 words, all caps.",
		progress, len(FallbackLines))

	text, err := n.llm.Complete(ctx, prompt, 0.9)
	if err != nil {
		slog.Warn("flavor text failed, using fallback", "progress", progress, "error", err)
		return FallbackFlavor(progress)
	}
	return text
}

func (n *OpenAINarrator) DeathNote(ctx context.Context) string {
	prompt := "The player was caught by the faceless stalker in the forest. Write a short, chilling death message, all caps."

	text, err := n.llm.Complete(ctx, prompt, 1.0)
	if err != nil {
		slog.Warn("death note failed, using fallback", "error", err)
		return failedDeathNote
	}
	return text
}
