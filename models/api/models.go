package api

import "time"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Stack string `json:"stack,omitempty"`
}

type DiscordGuildModel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon,omitempty"`
	IconURL       string   `json:"iconUrl,omitempty"`
	Description   string   `json:"description,omitempty"`
	Owner         bool     `json:"owner"`
	Features      []string `json:"features"`
	MemberCount   *int     `json:"memberCount,omitempty"`
	PresenceCount *int     `json:"presenceCount,omitempty"`
}

type DiscordSearchResponse struct {
	Guilds []*DiscordGuildModel `json:"guilds"`
}

type DiscordJoinRequest struct {
	CommunityID string `json:"communityId"`
}

type DiscordJoinResponse struct {
	InviteURL string `json:"inviteUrl"`
}

type SlackChannelModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Purpose     string `json:"purpose"`
	Topic       string `json:"topic"`
	IsPrivate   bool   `json:"isPrivate"`
	MemberCount int    `json:"memberCount"`
}

type SlackSearchResponse struct {
	Channels []*SlackChannelModel `json:"channels"`
}

type MessageModel struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversationModel struct {
	ID        string          `json:"id"`
	Messages  []*MessageModel `json:"messages"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse holds the two turns appended by a submission
type SendMessageResponse struct {
	UserMessage      *MessageModel `json:"userMessage"`
	AssistantMessage *MessageModel `json:"assistantMessage"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
