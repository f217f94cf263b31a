package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/models"
)

var discordInviteBase = "https://discord.gg/"

// maxGuildsPerPage is the largest page Discord allows for /users/@me/guilds
const maxGuildsPerPage = 200

// DiscordClient implements the clients.DiscordClient interface using the bot token
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client authenticated as the bot
func NewDiscordClient(httpClient *http.Client, botToken string) (clients.DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Client = httpClient
	// every failure is terminal for the request that caused it
	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 0

	return &DiscordClient{session: session}, nil
}

// ListBotGuilds returns summary records of every guild the bot is a member of
func (c *DiscordClient) ListBotGuilds(ctx context.Context) ([]*models.DiscordGuild, error) {
	var guilds []*models.DiscordGuild
	afterID := ""
	for {
		page, err := c.session.UserGuilds(maxGuildsPerPage, "", afterID, false, discordgo.WithContext(ctx))
		if err != nil {
			return nil, wrapDiscordError("failed to list bot guilds", err)
		}

		for _, userGuild := range page {
			guilds = append(guilds, &models.DiscordGuild{
				ID:       userGuild.ID,
				Name:     userGuild.Name,
				Icon:     userGuild.Icon,
				Owner:    userGuild.Owner,
				Features: featureStrings(userGuild.Features),
			})
		}

		if len(page) < maxGuildsPerPage {
			return guilds, nil
		}
		afterID = page[len(page)-1].ID
	}
}

// GetGuild fetches the full guild record including approximate member counts
func (c *DiscordClient) GetGuild(ctx context.Context, guildID string) (*models.DiscordGuild, error) {
	guild, err := c.session.GuildWithCounts(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapDiscordError("failed to fetch guild", err)
	}
	if guild == nil {
		return nil, fmt.Errorf("guild %s: %w", guildID, core.ErrNotFound)
	}

	return &models.DiscordGuild{
		ID:              guild.ID,
		Name:            guild.Name,
		Icon:            guild.Icon,
		Description:     guild.Description,
		Features:        featureStrings(guild.Features),
		SystemChannelID: guild.SystemChannelID,
		MemberCount:     mo.Some(guild.ApproximateMemberCount),
		PresenceCount:   mo.Some(guild.ApproximatePresenceCount),
	}, nil
}

// GetGuildChannels lists the channels of a guild
func (c *DiscordClient) GetGuildChannels(ctx context.Context, guildID string) ([]*models.DiscordChannel, error) {
	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapDiscordError("failed to fetch guild channels", err)
	}

	result := make([]*models.DiscordChannel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, &models.DiscordChannel{
			ID:       channel.ID,
			Name:     channel.Name,
			Type:     int(channel.Type),
			Position: channel.Position,
		})
	}
	return result, nil
}

// CreateInvite mints an invite for the given channel
func (c *DiscordClient) CreateInvite(
	ctx context.Context,
	channelID string,
	params clients.DiscordInviteParams,
) (*models.DiscordInvite, error) {
	invite, err := c.session.ChannelInviteCreate(channelID, discordgo.Invite{
		MaxAge:  params.MaxAgeSeconds,
		MaxUses: params.MaxUses,
		Unique:  params.Unique,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, wrapDiscordError("failed to create invite", err)
	}
	if invite == nil || invite.Code == "" {
		return nil, &core.UpstreamError{Service: "Discord", Err: errors.New("invite code missing from response")}
	}

	result := &models.DiscordInvite{
		Code:      invite.Code,
		URL:       discordInviteBase + invite.Code,
		ChannelID: channelID,
		MaxAge:    time.Duration(params.MaxAgeSeconds) * time.Second,
		MaxUses:   params.MaxUses,
	}
	if invite.Guild != nil {
		result.GuildID = invite.Guild.ID
	}
	return result, nil
}

func featureStrings(features []discordgo.GuildFeature) []string {
	result := make([]string, 0, len(features))
	for _, feature := range features {
		result = append(result, string(feature))
	}
	return result
}

func wrapDiscordError(message string, err error) error {
	upErr := &core.UpstreamError{Service: "Discord", Err: err}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", message, errors.Join(core.ErrNotFound, upErr))
		}
		if restErr.Message != nil && restErr.Message.Message != "" {
			upErr.Code = restErr.Message.Message
		}
	}
	return fmt.Errorf("%s: %w", message, upErr)
}
