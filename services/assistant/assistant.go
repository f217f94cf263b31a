package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/mo"

	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/metrics"
	"rqbackend/models"
)

const (
	// NoResponseMessage is the assistant turn used when the provider returns no generated text
	NoResponseMessage = "I apologize, but I couldn't generate a response."
	// ConnectionErrorMessage is the assistant turn used when the provider call fails
	ConnectionErrorMessage = "I'm having trouble connecting right now. Please try again later."

	defaultConversationTTL = 24 * time.Hour
)

var suggestedPrompts = []string{
	"Help me find recent papers on my research topic",
	"Suggest an experimental design for my hypothesis",
	"Explain which statistical test fits my data",
	"Summarize the key points of a research article",
	"Recommend an analysis tool from the gallery",
}

// Options tunes the chat cycle
type Options struct {
	// MaxPromptTokens of 0 sends the full transcript
	MaxPromptTokens int
	MaxTokens       int
	Temperature     float64
	// RequestTimeout bounds a single provider call; 0 disables the bound
	RequestTimeout  time.Duration
	ConversationTTL time.Duration
	// Metrics is optional
	Metrics *metrics.Metrics
}

type AssistantService struct {
	assistantClient clients.AssistantClient
	store           *ConversationStore
	prompts         *promptBuilder
	requestTimeout  time.Duration
	conversationTTL time.Duration
	metrics         *metrics.Metrics
	now             func() time.Time
}

func NewAssistantService(
	assistantClient clients.AssistantClient,
	store *ConversationStore,
	tokenCounter *core.TokenCounter,
	opts Options,
) *AssistantService {
	if opts.ConversationTTL <= 0 {
		opts.ConversationTTL = defaultConversationTTL
	}
	return &AssistantService{
		assistantClient: assistantClient,
		store:           store,
		prompts: &promptBuilder{
			tokenCounter:    tokenCounter,
			maxPromptTokens: opts.MaxPromptTokens,
			maxTokens:       opts.MaxTokens,
			temperature:     opts.Temperature,
		},
		requestTimeout:  opts.RequestTimeout,
		conversationTTL: opts.ConversationTTL,
		metrics:         opts.Metrics,
		now:             time.Now,
	}
}

func (s *AssistantService) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	conversation := s.store.Create()
	log.Printf("✅ Created assistant conversation %s", conversation.ID)
	return conversation, nil
}

func (s *AssistantService) GetConversation(
	ctx context.Context,
	conversationID string,
) (mo.Option[*models.Conversation], error) {
	if !core.IsValidULID(conversationID) {
		return mo.None[*models.Conversation](), core.NewValidationError("conversation ID must be a valid ULID")
	}
	return s.store.Get(conversationID), nil
}

// SendMessage appends the user turn and the assistant reply to the conversation.
// Provider failures never surface as errors: they become a fallback assistant turn.
func (s *AssistantService) SendMessage(
	ctx context.Context,
	conversationID, content string,
) (*models.Message, *models.Message, error) {
	log.Printf("📋 Starting to send message to conversation: %s", conversationID)
	if !core.IsValidULID(conversationID) {
		return nil, nil, core.NewValidationError("conversation ID must be a valid ULID")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, core.NewValidationError("content is required")
	}

	var userMessage, assistantMessage models.Message
	_, err := s.store.Update(conversationID, func(conversation *models.Conversation) error {
		req := s.prompts.build(conversation.Messages, content)
		userMessage = s.newMessage(models.MessageRoleUser, content)

		reply := s.generateReply(ctx, conversationID, req)
		assistantMessage = s.newMessage(models.MessageRoleAssistant, reply)

		conversation.Messages = append(conversation.Messages, userMessage, assistantMessage)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send message: %w", err)
	}

	log.Printf("📋 Completed successfully - appended 2 messages to conversation: %s", conversationID)
	return &userMessage, &assistantMessage, nil
}

// ClearConversation resets the transcript to empty
func (s *AssistantService) ClearConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if !core.IsValidULID(conversationID) {
		return nil, core.NewValidationError("conversation ID must be a valid ULID")
	}

	conversation, err := s.store.Update(conversationID, func(conversation *models.Conversation) error {
		conversation.Messages = []models.Message{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear conversation: %w", err)
	}

	log.Printf("✅ Cleared assistant conversation %s", conversationID)
	return conversation, nil
}

func (s *AssistantService) SuggestedPrompts() []string {
	return append([]string{}, suggestedPrompts...)
}

// CleanupIdleConversations drops conversations that have not been used within the TTL
func (s *AssistantService) CleanupIdleConversations(ctx context.Context) error {
	evicted := s.store.EvictIdle(s.conversationTTL)
	if evicted > 0 {
		log.Printf("🧹 Evicted %d idle assistant conversation(s), %d remaining", evicted, s.store.Len())
	}
	return nil
}

func (s *AssistantService) generateReply(ctx context.Context, conversationID string, req *clients.CompletionRequest) string {
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	resp, err := s.assistantClient.Complete(ctx, req)
	if err != nil {
		log.Printf("❌ Assistant request failed for conversation %s: %v", conversationID, err)
		s.metrics.ObserveAssistantReply(metrics.ReplyOutcomeFallback)
		return ConnectionErrorMessage
	}
	if resp == nil || resp.Text.IsAbsent() {
		log.Printf("⚠️ Assistant returned no generated text for conversation %s", conversationID)
		s.metrics.ObserveAssistantReply(metrics.ReplyOutcomeNoText)
		return NoResponseMessage
	}
	s.metrics.ObserveAssistantReply(metrics.ReplyOutcomeGenerated)
	return resp.Text.MustGet()
}

func (s *AssistantService) newMessage(role models.MessageRole, content string) models.Message {
	return models.Message{
		ID:        core.NewID("msg"),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
}
