package models

import "time"

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Message is a single turn in an assistant conversation
type Message struct {
	ID        string
	Role      MessageRole
	Content   string
	Timestamp time.Time
}

// Conversation is an ordered transcript. Messages are only ever appended or bulk-cleared.
type Conversation struct {
	ID        string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
