package clients

import (
	"context"

	"github.com/samber/mo"

	"rqbackend/models"
)

// DiscordClient defines the bot-token Discord operations used by the community proxy
type DiscordClient interface {
	ListBotGuilds(ctx context.Context) ([]*models.DiscordGuild, error)
	GetGuild(ctx context.Context, guildID string) (*models.DiscordGuild, error)
	GetGuildChannels(ctx context.Context, guildID string) ([]*models.DiscordChannel, error)
	CreateInvite(ctx context.Context, channelID string, params DiscordInviteParams) (*models.DiscordInvite, error)
}

// SlackClient defines the user-token Slack operations used by the channel search
type SlackClient interface {
	// ListConversations returns one page of conversations and the cursor for the next page ("" when done)
	ListConversations(ctx context.Context, cursor string) ([]*models.SlackChannel, string, error)
}

// AssistantClient generates the next assistant turn for a transcript
type AssistantClient interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// DiscordInviteParams holds parameters for minting a Discord invite
type DiscordInviteParams struct {
	MaxAgeSeconds int
	MaxUses       int
	Unique        bool
}

// CompletionTurn is one prior message sent to the model
type CompletionTurn struct {
	Role    models.MessageRole
	Content string
}

// CompletionRequest holds everything a provider needs to produce a reply
type CompletionRequest struct {
	SystemPrompt string
	Turns        []CompletionTurn
	MaxTokens    int
	Temperature  float64
}

// CompletionResponse carries the first generated text, if the provider returned any
type CompletionResponse struct {
	Text mo.Option[string]
}
