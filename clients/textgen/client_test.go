package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqbackend/clients"
	"rqbackend/models"
)

func testRequest() *clients.CompletionRequest {
	return &clients.CompletionRequest{
		SystemPrompt: "You are a research assistant.",
		Turns: []clients.CompletionTurn{
			{Role: models.MessageRoleUser, Content: "What is a p-value?"},
			{Role: models.MessageRoleAssistant, Content: "A probability."},
			{Role: models.MessageRoleUser, Content: "Explain more"},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

func TestFormatPrompt(t *testing.T) {
	expected := "You are a research assistant.\n\n" +
		"User: What is a p-value?\n" +
		"Assistant: A probability.\n" +
		"User: Explain more\n" +
		"Assistant:"

	assert.Equal(t, expected, FormatPrompt(testRequest()))
	assert.Equal(t, "Assistant:", FormatPrompt(&clients.CompletionRequest{}))
}

func TestTextGenClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, FormatPrompt(testRequest()), body["inputs"])
		params := body["parameters"].(map[string]any)
		assert.EqualValues(t, 500, params["max_new_tokens"])
		assert.EqualValues(t, 0.7, params["temperature"])
		assert.Equal(t, false, params["return_full_text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text": "  It measures evidence against the null.  "}, {"generated_text": "second"}]`))
	}))
	defer server.Close()

	originalBase := textGenAPIBase
	textGenAPIBase = server.URL + "/models/"
	defer func() { textGenAPIBase = originalBase }()

	client := NewTextGenClient(&http.Client{}, "test-key", "test-model", "")
	resp, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "It measures evidence against the null.", resp.Text.MustGet())
}

func TestTextGenClient_Complete_CustomEndpointObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"generated_text": "hello"}`))
	}))
	defer server.Close()

	client := NewTextGenClient(&http.Client{}, "", "ignored", server.URL+"/generate")
	resp, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text.MustGet())
}

func TestTextGenClient_Complete_NoGeneratedText(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "empty list", body: `[]`},
		{name: "missing field", body: `[{"score": 1}]`},
		{name: "blank text", body: `[{"generated_text": "   "}]`},
		{name: "empty body", body: ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewTextGenClient(&http.Client{}, "k", "m", server.URL)
			resp, err := client.Complete(context.Background(), testRequest())

			require.NoError(t, err)
			assert.True(t, resp.Text.IsAbsent())
		})
	}
}

func TestTextGenClient_Complete_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "Model is currently loading"}`))
	}))
	defer server.Close()

	client := NewTextGenClient(&http.Client{}, "k", "m", server.URL)
	resp, err := client.Complete(context.Background(), testRequest())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "Model is currently loading")
}

func TestTextGenClient_Complete_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewTextGenClient(&http.Client{}, "k", "m", server.URL)
	resp, err := client.Complete(context.Background(), testRequest())

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
