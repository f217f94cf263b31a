package clients

import (
	"context"
	"fmt"

	"rqbackend/core"
)

// OptionalAssistantClient fails every completion when no inference provider is configured
type OptionalAssistantClient struct{}

func NewOptionalAssistantClient() *OptionalAssistantClient {
	return &OptionalAssistantClient{}
}

func (c *OptionalAssistantClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	return nil, fmt.Errorf("Assistant: %w", core.ErrNotConfigured)
}
