package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

// MemoryStore keeps chats and messages in process memory. It backs tests and
// the "memory" driver; nothing survives a restart.
type MemoryStore struct {
	mu            sync.RWMutex
	chats         map[string]chat.Chat
	byPersonality map[string]string
	messages      map[string][]chat.Message
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chats:         make(map[string]chat.Chat),
		byPersonality: make(map[string]string),
		messages:      make(map[string][]chat.Message),
	}
}

func (s *MemoryStore) FindChat(_ context.Context, chatID string) (chat.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[chatID]
	if !ok {
		return chat.Chat{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) FindChatByPersonality(_ context.Context, personalityID string) (chat.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPersonality[personalityID]
	if !ok {
		return chat.Chat{}, ErrNotFound
	}
	return s.chats[id], nil
}

// InsertChat enforces the same uniqueness as the database backends: one chat
// per id and one chat per personality.
func (s *MemoryStore) InsertChat(_ context.Context, c chat.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[c.ID]; ok {
		return ErrDuplicateKey
	}
	if _, ok := s.byPersonality[c.PersonalityID]; ok {
		return ErrDuplicateKey
	}
	s.chats[c.ID] = c
	s.byPersonality[c.PersonalityID] = c.ID
	return nil
}

func (s *MemoryStore) UpdateChatSummary(_ context.Context, chatID, lastMessage string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return ErrNotFound
	}
	text := lastMessage
	when := at.UTC()
	c.LastMessage = &text
	c.LastMessageTime = &when
	s.chats[chatID] = c
	return nil
}

func (s *MemoryStore) ListChats(_ context.Context) ([]chat.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]chat.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) InsertMessage(_ context.Context, msg *chat.Message) error {
	msg.Stamp(clock())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], *msg)
	return nil
}

func (s *MemoryStore) ListMessages(_ context.Context, chatID string, limit int) ([]chat.Message, error) {
	sorted := s.sortedMessages(chatID)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (s *MemoryStore) ListRecentMessages(_ context.Context, chatID string, limit int) ([]chat.Message, error) {
	sorted := s.sortedMessages(chatID)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted, nil
}

// sortedMessages returns a chronological copy of a chat's messages.
func (s *MemoryStore) sortedMessages(chatID string) []chat.Message {
	s.mu.RLock()
	messages := s.messages[chatID]
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	s.mu.RUnlock()

	sort.SliceStable(copied, func(i, j int) bool { return chat.Less(copied[i], copied[j]) })
	return copied
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
