package slack

import (
	"context"
	"fmt"
	"log"

	"rqbackend/clients"
	"rqbackend/models"
	"rqbackend/utils"
)

type SlackService struct {
	slackClient clients.SlackClient
	maxPages    int
}

// NewSlackService creates the channel search service.
// maxPages caps how many conversations.list pages are read; 1 reads only the first page.
func NewSlackService(slackClient clients.SlackClient, maxPages int) *SlackService {
	if maxPages <= 0 {
		maxPages = 1
	}
	return &SlackService{
		slackClient: slackClient,
		maxPages:    maxPages,
	}
}

// SearchChannels returns channels whose name, purpose or topic contains query (case-insensitive).
// An empty query matches every channel read.
func (s *SlackService) SearchChannels(ctx context.Context, query string) ([]*models.SlackChannel, error) {
	log.Printf("📋 Starting to search Slack channels for query: %q", query)

	var channels []*models.SlackChannel
	cursor := ""
	for page := 0; page < s.maxPages; page++ {
		pageChannels, nextCursor, err := s.slackClient.ListConversations(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list Slack conversations: %w", err)
		}
		channels = append(channels, pageChannels...)

		if nextCursor == "" {
			break
		}
		if page == s.maxPages-1 {
			log.Printf("⚠️ Slack conversation list truncated after %d page(s)", s.maxPages)
		}
		cursor = nextCursor
	}

	matches := make([]*models.SlackChannel, 0, len(channels))
	for _, channel := range channels {
		if utils.ContainsAnyFold(query, channel.Name, channel.Purpose, channel.Topic) {
			matches = append(matches, channel)
		}
	}

	log.Printf("📋 Completed successfully - found %d of %d Slack channels matching %q", len(matches), len(channels), query)
	return matches, nil
}
