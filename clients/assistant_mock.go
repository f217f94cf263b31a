package clients

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
)

// MockAssistantClient is a mock implementation of AssistantClient
type MockAssistantClient struct {
	mock.Mock
}

func (m *MockAssistantClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CompletionResponse), args.Error(1)
}

// WithReply configures the mock to answer every request with text
func (m *MockAssistantClient) WithReply(text string) *MockAssistantClient {
	m.On("Complete", mock.Anything, mock.Anything).Return(&CompletionResponse{Text: mo.Some(text)}, nil)
	return m
}
