package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"

	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/models"
)

var conversationTypes = []string{"public_channel", "private_channel"}

// SlackClient implements the clients.SlackClient interface using the slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided user token
func NewSlackClient(httpClient *http.Client, userToken string, options ...slack.Option) clients.SlackClient {
	options = append([]slack.Option{slack.OptionHTTPClient(httpClient)}, options...)
	return &SlackClient{
		Client: slack.New(userToken, options...),
	}
}

// ListConversations returns a single page of channels visible to the token, archived ones included
func (c *SlackClient) ListConversations(
	ctx context.Context,
	cursor string,
) ([]*models.SlackChannel, string, error) {
	channels, nextCursor, err := c.Client.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Cursor: cursor,
		Types:  conversationTypes,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list conversations: %w", wrapSlackError(err))
	}

	result := make([]*models.SlackChannel, 0, len(channels))
	for _, channel := range channels {
		result = append(result, &models.SlackChannel{
			ID:          channel.ID,
			Name:        channel.Name,
			Purpose:     channel.Purpose.Value,
			Topic:       channel.Topic.Value,
			IsPrivate:   channel.IsPrivate,
			IsArchived:  channel.IsArchived,
			MemberCount: channel.NumMembers,
		})
	}
	return result, nextCursor, nil
}

// wrapSlackError keeps the Slack-provided error string (e.g. "invalid_auth") when the API returned ok=false
func wrapSlackError(err error) error {
	upErr := &core.UpstreamError{Service: "Slack", Err: err}

	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		upErr.Code = slackErr.Err
	}
	return upErr
}
