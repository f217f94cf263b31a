package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rqbackend/models"
)

// MockSlackService is a mock implementation of the SlackService interface
type MockSlackService struct {
	mock.Mock
}

func (m *MockSlackService) SearchChannels(ctx context.Context, query string) ([]*models.SlackChannel, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SlackChannel), args.Error(1)
}
