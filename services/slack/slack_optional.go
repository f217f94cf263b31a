package slack

import (
	"context"
	"fmt"

	"rqbackend/core"
	"rqbackend/models"
)

// OptionalSlackService returns errors for all operations when Slack is not configured
type OptionalSlackService struct{}

func NewOptionalSlackService() *OptionalSlackService {
	return &OptionalSlackService{}
}

func (s *OptionalSlackService) SearchChannels(ctx context.Context, query string) ([]*models.SlackChannel, error) {
	return nil, fmt.Errorf("Slack: %w", core.ErrNotConfigured)
}
