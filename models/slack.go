package models

// SlackChannel is a Slack conversation visible to the configured user token
type SlackChannel struct {
	ID          string
	Name        string
	Purpose     string
	Topic       string
	IsPrivate   bool
	IsArchived  bool
	MemberCount int
}
