package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/procureflow/pr-service/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newStubbedSummarizer points the client at a local server that records the
// request and replies with the given summary.
func newStubbedSummarizer(t *testing.T, summary string, gotReq *openai.ChatCompletionRequest) *Summarizer {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: summary}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()
	return New(Config{
		APIKey:      "test-key",
		BaseURL:     server.URL + "/v1",
		Model:       "gpt-3.5-turbo",
		Temperature: 0.5,
		MaxTokens:   50,
	}, logger)
}

func TestSummarize(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	s := newStubbedSummarizer(t, "  Procurement of new lab equipment.  ", &gotReq)

	summary, err := s.Summarize(context.Background(), "We need to buy three oscilloscopes for the hardware lab.")
	require.NoError(t, err)

	// Whitespace from the model is trimmed.
	assert.Equal(t, "Procurement of new lab equipment.", summary)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, gotReq.Messages[1].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Summarize this PR:")
	assert.Equal(t, 50, gotReq.MaxTokens)
}

func TestSummarizeDescriptionBounds(t *testing.T) {
	s := newStubbedSummarizer(t, "unused", nil)

	tests := []struct {
		name        string
		description string
	}{
		{name: "too short", description: "short"},
		{name: "too long", description: strings.Repeat("x", 1001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Summarize(context.Background(), tt.description)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrValidation))
		})
	}
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	logger, _ := zap.NewDevelopment()
	s := New(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "gpt-3.5-turbo"}, logger)

	_, err := s.Summarize(context.Background(), "We need to buy three oscilloscopes for the hardware lab.")
	assert.Error(t, err)
}
