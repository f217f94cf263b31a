package services

import (
	"context"

	"github.com/samber/mo"

	"rqbackend/models"
)

// DiscordService searches the bot's guilds and mints invites
type DiscordService interface {
	SearchCommunities(ctx context.Context, query string) ([]*models.DiscordGuild, error)
	CreateInvite(ctx context.Context, communityID string) (*models.DiscordInvite, error)
}

// SlackService searches channels visible to the configured user token
type SlackService interface {
	SearchChannels(ctx context.Context, query string) ([]*models.SlackChannel, error)
}

// AssistantService runs the AI chat request/response cycle
type AssistantService interface {
	CreateConversation(ctx context.Context) (*models.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (mo.Option[*models.Conversation], error)
	SendMessage(ctx context.Context, conversationID, content string) (*models.Message, *models.Message, error)
	ClearConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	SuggestedPrompts() []string
	CleanupIdleConversations(ctx context.Context) error
}
