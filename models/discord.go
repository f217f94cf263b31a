package models

import (
	"time"

	"github.com/samber/mo"
)

// DiscordGuild is a guild the bot is a member of.
// Counts are only present once the guild has been enriched with its full record.
type DiscordGuild struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Owner       bool
	Features    []string
	// SystemChannelID is only known from the full guild record
	SystemChannelID string
	MemberCount     mo.Option[int]
	PresenceCount   mo.Option[int]
}

// DiscordChannel is the subset of channel data needed to pick an invite target
type DiscordChannel struct {
	ID       string
	Name     string
	Type     int
	Position int
}

// DiscordChannelTypeGuildText mirrors discord's GUILD_TEXT channel type
const DiscordChannelTypeGuildText = 0

// DiscordInvite is a time and use limited join link
type DiscordInvite struct {
	Code      string
	URL       string
	GuildID   string
	ChannelID string
	MaxAge    time.Duration
	MaxUses   int
}
