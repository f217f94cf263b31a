package discord

import (
	"context"
	"fmt"

	"rqbackend/core"
	"rqbackend/models"
)

// OptionalDiscordService returns errors for all operations when Discord is not configured
type OptionalDiscordService struct{}

func NewOptionalDiscordService() *OptionalDiscordService {
	return &OptionalDiscordService{}
}

func (s *OptionalDiscordService) SearchCommunities(ctx context.Context, query string) ([]*models.DiscordGuild, error) {
	return nil, fmt.Errorf("Discord: %w", core.ErrNotConfigured)
}

func (s *OptionalDiscordService) CreateInvite(ctx context.Context, communityID string) (*models.DiscordInvite, error) {
	return nil, fmt.Errorf("Discord: %w", core.ErrNotConfigured)
}
