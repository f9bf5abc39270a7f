// Package summary generates item summaries through an OpenAI-compatible
// chat completion endpoint.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"rssdigest/app/config"
	"rssdigest/app/feed"
)

const requestTimeout = 60 * time.Second

type Summarizer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Run produces a short summary for one item. Callers treat any error as
// "no summary": the item is still recorded, just not pushed.
func (s *Summarizer) Run(ctx context.Context, item feed.Item) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(item),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if result == "" {
		return "", fmt.Errorf("chat completion returned empty summary")
	}

	return result, nil
}

func buildPrompt(item feed.Item) string {
	var b strings.Builder
	b.WriteString("Summarize the following article in three to five short sentences. ")
	b.WriteString("State the facts directly, without introductions like \"the article says\".\n\n")
	fmt.Fprintf(&b, "Title: %s\n", item.Title)
	fmt.Fprintf(&b, "Source: %s (%s)\n\n", item.FeedName, item.Category)
	b.WriteString(item.Body)
	return b.String()
}
