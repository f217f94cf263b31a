package api

import (
	"fmt"

	"rqbackend/models"
)

const discordCDNBase = "https://cdn.discordapp.com"

// DomainDiscordGuildToAPIDiscordGuild converts a domain DiscordGuild to its API model
func DomainDiscordGuildToAPIDiscordGuild(guild *models.DiscordGuild) *DiscordGuildModel {
	if guild == nil {
		return nil
	}

	features := guild.Features
	if features == nil {
		features = []string{}
	}

	model := &DiscordGuildModel{
		ID:          guild.ID,
		Name:        guild.Name,
		Icon:        guild.Icon,
		Description: guild.Description,
		Owner:       guild.Owner,
		Features:    features,
	}
	if guild.Icon != "" {
		model.IconURL = fmt.Sprintf("%s/icons/%s/%s.png", discordCDNBase, guild.ID, guild.Icon)
	}
	if count, ok := guild.MemberCount.Get(); ok {
		model.MemberCount = &count
	}
	if count, ok := guild.PresenceCount.Get(); ok {
		model.PresenceCount = &count
	}
	return model
}

// DomainDiscordGuildsToAPIDiscordGuilds converts a slice of domain guilds, never returning nil
func DomainDiscordGuildsToAPIDiscordGuilds(guilds []*models.DiscordGuild) []*DiscordGuildModel {
	result := make([]*DiscordGuildModel, 0, len(guilds))
	for _, guild := range guilds {
		result = append(result, DomainDiscordGuildToAPIDiscordGuild(guild))
	}
	return result
}

func DomainSlackChannelToAPISlackChannel(channel *models.SlackChannel) *SlackChannelModel {
	if channel == nil {
		return nil
	}

	return &SlackChannelModel{
		ID:          channel.ID,
		Name:        channel.Name,
		Purpose:     channel.Purpose,
		Topic:       channel.Topic,
		IsPrivate:   channel.IsPrivate,
		MemberCount: channel.MemberCount,
	}
}

func DomainSlackChannelsToAPISlackChannels(channels []*models.SlackChannel) []*SlackChannelModel {
	result := make([]*SlackChannelModel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, DomainSlackChannelToAPISlackChannel(channel))
	}
	return result
}

func DomainMessageToAPIMessage(message *models.Message) *MessageModel {
	if message == nil {
		return nil
	}

	return &MessageModel{
		ID:        message.ID,
		Role:      string(message.Role),
		Content:   message.Content,
		Timestamp: message.Timestamp,
	}
}

func DomainConversationToAPIConversation(conversation *models.Conversation) *ConversationModel {
	if conversation == nil {
		return nil
	}

	messages := make([]*MessageModel, 0, len(conversation.Messages))
	for i := range conversation.Messages {
		messages = append(messages, DomainMessageToAPIMessage(&conversation.Messages[i]))
	}

	return &ConversationModel{
		ID:        conversation.ID,
		Messages:  messages,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
}
