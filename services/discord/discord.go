package discord

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gammazero/workerpool"

	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/models"
	"rqbackend/utils"
)

const (
	inviteMaxAgeSeconds = 24 * 60 * 60
	inviteMaxUses       = 1

	defaultEnrichWorkers = 5
	defaultDetailTimeout = 10 * time.Second
)

type DiscordService struct {
	discordClient clients.DiscordClient
	enrichWorkers int
	detailTimeout time.Duration
}

// NewDiscordService creates the community search service.
// enrichWorkers bounds concurrent guild detail calls; detailTimeout bounds each one.
func NewDiscordService(
	discordClient clients.DiscordClient,
	enrichWorkers int,
	detailTimeout time.Duration,
) *DiscordService {
	if enrichWorkers <= 0 {
		enrichWorkers = defaultEnrichWorkers
	}
	if detailTimeout <= 0 {
		detailTimeout = defaultDetailTimeout
	}
	return &DiscordService{
		discordClient: discordClient,
		enrichWorkers: enrichWorkers,
		detailTimeout: detailTimeout,
	}
}

// SearchCommunities returns the bot's guilds whose name contains query (case-insensitive),
// enriched with their full record where the detail call succeeds
func (s *DiscordService) SearchCommunities(ctx context.Context, query string) ([]*models.DiscordGuild, error) {
	log.Printf("📋 Starting to search Discord communities for query: %q", query)
	if query == "" {
		return nil, core.NewValidationError("query parameter is required")
	}

	guilds, err := s.discordClient.ListBotGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Discord guilds: %w", err)
	}

	var matches []*models.DiscordGuild
	for _, guild := range guilds {
		if utils.ContainsFold(guild.Name, query) {
			matches = append(matches, guild)
		}
	}

	enriched := s.enrichGuilds(ctx, matches)

	log.Printf("📋 Completed successfully - found %d of %d Discord guilds matching %q", len(enriched), len(guilds), query)
	return enriched, nil
}

// enrichGuilds fetches full guild records on a bounded pool, keeping the input order
func (s *DiscordService) enrichGuilds(ctx context.Context, guilds []*models.DiscordGuild) []*models.DiscordGuild {
	results := make([]*models.DiscordGuild, len(guilds))
	if len(guilds) == 0 {
		return results
	}

	wp := workerpool.New(min(s.enrichWorkers, len(guilds)))
	for i, guild := range guilds {
		wp.Submit(func() {
			results[i] = s.enrichGuild(ctx, guild)
		})
	}
	wp.StopWait()

	return results
}

func (s *DiscordService) enrichGuild(ctx context.Context, summary *models.DiscordGuild) *models.DiscordGuild {
	detailCtx, cancel := context.WithTimeout(ctx, s.detailTimeout)
	defer cancel()

	detail, err := s.discordClient.GetGuild(detailCtx, summary.ID)
	if err != nil {
		log.Printf("⚠️ Failed to fetch details for guild %s, using summary: %v", summary.ID, err)
		return summary
	}

	// membership flags only exist on the summary
	detail.Owner = summary.Owner
	if detail.Name == "" {
		detail.Name = summary.Name
	}
	if detail.Icon == "" {
		detail.Icon = summary.Icon
	}
	return detail
}

// CreateInvite mints a single-use, 24-hour invite to the community
func (s *DiscordService) CreateInvite(ctx context.Context, communityID string) (*models.DiscordInvite, error) {
	log.Printf("📋 Starting to create Discord invite for community: %s", communityID)
	communityID = strings.TrimSpace(communityID)
	if communityID == "" {
		return nil, core.NewValidationError("communityId is required")
	}

	channelID, err := s.inviteChannelID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	invite, err := s.discordClient.CreateInvite(ctx, channelID, clients.DiscordInviteParams{
		MaxAgeSeconds: inviteMaxAgeSeconds,
		MaxUses:       inviteMaxUses,
		Unique:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invite for guild %s: %w", communityID, err)
	}
	if invite.GuildID == "" {
		invite.GuildID = communityID
	}

	log.Printf("📋 Completed successfully - created invite %s for community: %s", invite.Code, communityID)
	return invite, nil
}

// inviteChannelID prefers the guild's system channel, then the top-most text channel
func (s *DiscordService) inviteChannelID(ctx context.Context, guildID string) (string, error) {
	guild, err := s.discordClient.GetGuild(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	if guild.SystemChannelID != "" {
		return guild.SystemChannelID, nil
	}

	channels, err := s.discordClient.GetGuildChannels(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channels for guild %s: %w", guildID, err)
	}

	var textChannels []*models.DiscordChannel
	for _, channel := range channels {
		if channel.Type == models.DiscordChannelTypeGuildText {
			textChannels = append(textChannels, channel)
		}
	}
	if len(textChannels) == 0 {
		return "", fmt.Errorf("guild %s has no text channel to invite into", guildID)
	}

	sort.SliceStable(textChannels, func(i, j int) bool {
		return textChannels[i].Position < textChannels[j].Position
	})
	return textChannels[0].ID, nil
}
