package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/samber/mo"

	"rqbackend/clients"
	"rqbackend/models"
)

// DefaultModel is used when no ASSISTANT_MODEL is configured for the anthropic provider
const DefaultModel = "claude-3-5-haiku-latest"

// AnthropicClient implements clients.AssistantClient with the Messages API
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient creates a new Messages API client.
// Extra request options (e.g. option.WithBaseURL) are applied after the defaults.
func NewAnthropicClient(
	httpClient *http.Client,
	apiKey, model string,
	opts ...option.RequestOption,
) clients.AssistantClient {
	if model == "" {
		model = DefaultModel
	}

	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	requestOptions = append(requestOptions, opts...)

	return &AnthropicClient{
		client: anthropic.NewClient(requestOptions...),
		model:  anthropic.Model(model),
	}
}

// Complete sends the transcript as alternating messages and returns the first text block
func (c *AnthropicClient) Complete(
	ctx context.Context,
	req *clients.CompletionRequest,
) (*clients.CompletionResponse, error) {
	messages := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, turn := range req.Turns {
		block := anthropic.NewTextBlock(turn.Content)
		if turn.Role == models.MessageRoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	if len(messages) == 0 {
		return nil, errors.New("at least one turn is required")
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("anthropic request failed with status %d: %w", apiErr.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to call anthropic: %w", err)
	}

	for _, block := range message.Content {
		if block.Type != "text" {
			continue
		}
		if text := strings.TrimSpace(block.Text); text != "" {
			return &clients.CompletionResponse{Text: mo.Some(text)}, nil
		}
	}
	return &clients.CompletionResponse{Text: mo.None[string]()}, nil
}
