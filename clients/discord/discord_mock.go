package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rqbackend/clients"
	"rqbackend/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) ListBotGuilds(ctx context.Context) ([]*models.DiscordGuild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscordGuild), args.Error(1)
}

// GetGuild also accepts func(ctx, guildID) return values so tests can vary the reply per guild
func (m *MockDiscordClient) GetGuild(ctx context.Context, guildID string) (*models.DiscordGuild, error) {
	args := m.Called(ctx, guildID)

	var guild *models.DiscordGuild
	if fn, ok := args.Get(0).(func(context.Context, string) *models.DiscordGuild); ok {
		guild = fn(ctx, guildID)
	} else if args.Get(0) != nil {
		guild = args.Get(0).(*models.DiscordGuild)
	}

	if fn, ok := args.Get(1).(func(context.Context, string) error); ok {
		return guild, fn(ctx, guildID)
	}
	return guild, args.Error(1)
}

func (m *MockDiscordClient) GetGuildChannels(ctx context.Context, guildID string) ([]*models.DiscordChannel, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) CreateInvite(
	ctx context.Context,
	channelID string,
	params clients.DiscordInviteParams,
) (*models.DiscordInvite, error) {
	args := m.Called(ctx, channelID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordInvite), args.Error(1)
}
