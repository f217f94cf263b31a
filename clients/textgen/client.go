package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/mo"

	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/models"
)

var textGenAPIBase = "https://api-inference.huggingface.co/models/"

// DefaultModel is used when no model is configured
const DefaultModel = "mistralai/Mistral-7B-Instruct-v0.2"

// TextGenClient calls a hosted text-generation endpoint that returns [{"generated_text": "..."}]
type TextGenClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

// NewTextGenClient creates a client for the given model.
// endpoint overrides the model URL entirely when set.
func NewTextGenClient(httpClient *http.Client, apiKey, model, endpoint string) clients.AssistantClient {
	if model == "" {
		model = DefaultModel
	}
	if endpoint == "" {
		endpoint = textGenAPIBase + model
	}
	return &TextGenClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		endpoint:   endpoint,
	}
}

// Complete flattens the transcript into a single prompt and returns the first generated text
func (c *TextGenClient) Complete(
	ctx context.Context,
	req *clients.CompletionRequest,
) (*clients.CompletionResponse, error) {
	reqBody := generateRequest{
		Inputs: FormatPrompt(req),
		Parameters: generateParameters{
			MaxNewTokens:   req.MaxTokens,
			Temperature:    req.Temperature,
			ReturnFullText: false,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call text generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.UpstreamError{
			Service: "TextGen",
			Err:     fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	text, err := parseGeneratedText(body)
	if err != nil {
		return nil, err
	}
	return &clients.CompletionResponse{Text: text}, nil
}

// parseGeneratedText accepts both the list form and the single-object form some endpoints return
func parseGeneratedText(body []byte) (mo.Option[string], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return mo.None[string](), nil
	}

	var items []generatedText
	if trimmed[0] == '{' {
		var item generatedText
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return mo.None[string](), fmt.Errorf("failed to decode response: %w", err)
		}
		items = append(items, item)
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return mo.None[string](), fmt.Errorf("failed to decode response: %w", err)
	}

	for _, item := range items {
		if text := strings.TrimSpace(item.GeneratedText); text != "" {
			return mo.Some(text), nil
		}
	}
	return mo.None[string](), nil
}

// FormatPrompt renders the system preamble and transcript as a plain-text chat prompt,
// ending with an open assistant turn for the model to complete
func FormatPrompt(req *clients.CompletionRequest) string {
	var sb strings.Builder
	if req.SystemPrompt != "" {
		sb.WriteString(req.SystemPrompt)
		sb.WriteString("\n\n")
	}

	for _, turn := range req.Turns {
		switch turn.Role {
		case models.MessageRoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}

	sb.WriteString("Assistant:")
	return sb.String()
}
