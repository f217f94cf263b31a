package slack

import (
	"context"
	"fmt"

	"rqbackend/models"
)

// MockSlackClient implements SlackClient interface for testing
type MockSlackClient struct {
	MockListConversations func(ctx context.Context, cursor string) ([]*models.SlackChannel, string, error)

	// Cursors records the cursor of every ListConversations call
	Cursors []string
}

func (m *MockSlackClient) ListConversations(
	ctx context.Context,
	cursor string,
) ([]*models.SlackChannel, string, error) {
	m.Cursors = append(m.Cursors, cursor)
	if m.MockListConversations != nil {
		return m.MockListConversations(ctx, cursor)
	}
	return nil, "", fmt.Errorf("ListConversations not mocked")
}
