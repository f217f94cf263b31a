package assistant

import (
	"fmt"
	"sync"
	"time"

	"github.com/samber/mo"

	"rqbackend/core"
	"rqbackend/models"
)

type conversationEntry struct {
	mu           sync.Mutex
	conversation models.Conversation
	lastActive   time.Time
	evicted      bool
}

// ConversationStore holds transcripts in memory.
// Updates to one conversation are serialized by a per-conversation lock.
type ConversationStore struct {
	mu      sync.RWMutex
	entries map[string]*conversationEntry
	now     func() time.Time
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		entries: make(map[string]*conversationEntry),
		now:     time.Now,
	}
}

// Create starts an empty conversation
func (s *ConversationStore) Create() *models.Conversation {
	now := s.now()
	entry := &conversationEntry{
		conversation: models.Conversation{
			ID:        core.NewID("conv"),
			Messages:  []models.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		},
		lastActive: now,
	}

	s.mu.Lock()
	s.entries[entry.conversation.ID] = entry
	s.mu.Unlock()

	return snapshot(&entry.conversation)
}

// Get returns a copy of the conversation, waiting for any in-flight update to finish
func (s *ConversationStore) Get(id string) mo.Option[*models.Conversation] {
	entry, ok := s.entry(id)
	if !ok {
		return mo.None[*models.Conversation]()
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.evicted {
		return mo.None[*models.Conversation]()
	}
	return mo.Some(snapshot(&entry.conversation))
}

// Update runs fn with exclusive access to the conversation and returns a copy of the result
func (s *ConversationStore) Update(id string, fn func(conversation *models.Conversation) error) (*models.Conversation, error) {
	entry, ok := s.entry(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, core.ErrNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.evicted {
		return nil, fmt.Errorf("conversation %s: %w", id, core.ErrNotFound)
	}

	if err := fn(&entry.conversation); err != nil {
		return nil, err
	}

	now := s.now()
	entry.conversation.UpdatedAt = now
	entry.lastActive = now
	return snapshot(&entry.conversation), nil
}

// EvictIdle drops conversations untouched for longer than ttl and returns how many were dropped.
// Conversations with an update in flight are skipped.
func (s *ConversationStore) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.entries {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.lastActive.Before(cutoff) {
			entry.evicted = true
			delete(s.entries, id)
			evicted++
		}
		entry.mu.Unlock()
	}
	return evicted
}

// Len returns the number of live conversations
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *ConversationStore) entry(id string) (*conversationEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

func snapshot(conversation *models.Conversation) *models.Conversation {
	copied := *conversation
	copied.Messages = append([]models.Message{}, conversation.Messages...)
	return &copied
}
