package assistant

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"rqbackend/models"
)

// MockAssistantService is a mock implementation of the AssistantService interface
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockAssistantService) GetConversation(
	ctx context.Context,
	conversationID string,
) (mo.Option[*models.Conversation], error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return mo.None[*models.Conversation](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.Conversation]), args.Error(1)
}

func (m *MockAssistantService) SendMessage(
	ctx context.Context,
	conversationID, content string,
) (*models.Message, *models.Message, error) {
	args := m.Called(ctx, conversationID, content)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Message), args.Get(1).(*models.Message), args.Error(2)
}

func (m *MockAssistantService) ClearConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockAssistantService) SuggestedPrompts() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockAssistantService) CleanupIdleConversations(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
