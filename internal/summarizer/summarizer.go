// Package summarizer produces short summaries of requisition descriptions
// through an external LLM API. It holds no business logic of its own.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/procureflow/pr-service/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Description length bounds accepted by Summarize.
const (
	minDescriptionLen = 10
	maxDescriptionLen = 1000
)

const systemPrompt = "You are a helpful assistant that summarizes PR descriptions in a concise and professional manner."

// Config holds summarizer configuration. BaseURL overrides the API endpoint
// when routing through a proxy; leave it empty for the public API.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Summarizer summarizes requisition descriptions via the OpenAI chat API.
type Summarizer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// New creates a summarizer.
func New(cfg Config, logger *zap.Logger) *Summarizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Summarize returns a concise summary of the given description. The
// description must be between 10 and 1000 characters.
func (s *Summarizer) Summarize(ctx context.Context, description string) (string, error) {
	if len(description) < minDescriptionLen || len(description) > maxDescriptionLen {
		return "", fmt.Errorf("%w: description must be between %d and %d characters",
			models.ErrValidation, minDescriptionLen, maxDescriptionLen)
	}

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize this PR: %s", description),
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		s.logger.Error("OpenAI API call failed", zap.Error(err))
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.logger.Debug("Generated summary", zap.Int("summary_length", len(summary)))
	return summary, nil
}
