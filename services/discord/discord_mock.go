package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rqbackend/models"
)

// MockDiscordService is a mock implementation of the DiscordService interface
type MockDiscordService struct {
	mock.Mock
}

func (m *MockDiscordService) SearchCommunities(ctx context.Context, query string) ([]*models.DiscordGuild, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscordGuild), args.Error(1)
}

func (m *MockDiscordService) CreateInvite(ctx context.Context, communityID string) (*models.DiscordInvite, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordInvite), args.Error(1)
}
