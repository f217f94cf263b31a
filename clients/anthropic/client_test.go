package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqbackend/clients"
	"rqbackend/models"
)

func testRequest() *clients.CompletionRequest {
	return &clients.CompletionRequest{
		SystemPrompt: "You are a research assistant.",
		Turns: []clients.CompletionTurn{
			{Role: models.MessageRoleUser, Content: "hello"},
			{Role: models.MessageRoleAssistant, Content: "hi there"},
			{Role: models.MessageRoleUser, Content: "summarise my paper"},
		},
		MaxTokens:   256,
		Temperature: 0.5,
	}
}

func newTestClient(server *httptest.Server) clients.AssistantClient {
	return NewAnthropicClient(&http.Client{}, "test-key", "claude-test", option.WithBaseURL(server.URL))
}

func TestAnthropicClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body["model"])
		assert.EqualValues(t, 256, body["max_tokens"])
		assert.EqualValues(t, 0.5, body["temperature"])

		system := body["system"].([]any)
		require.Len(t, system, 1)
		assert.Equal(t, "You are a research assistant.", system[0].(map[string]any)["text"])

		messages := body["messages"].([]any)
		require.Len(t, messages, 3)
		assert.Equal(t, "user", messages[0].(map[string]any)["role"])
		assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Here is a summary."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server).Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Here is a summary.", resp.Text.MustGet())
}

func TestAnthropicClient_Complete_NoTextBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_02",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 0}
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server).Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Text.IsAbsent())
}

func TestAnthropicClient_Complete_APIError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "overloaded"}}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server).Complete(context.Background(), testRequest())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestAnthropicClient_Complete_NoTurns(t *testing.T) {
	client := NewAnthropicClient(&http.Client{}, "k", "")

	resp, err := client.Complete(context.Background(), &clients.CompletionRequest{})

	assert.Nil(t, resp)
	assert.Error(t, err)
}
