// Package store persists chats and messages. Backends share document-store
// semantics: single-record reads and writes, no joins, no transactions.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

var (
	// ErrNotFound reports a missing record. It is a valid, recoverable outcome.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateKey reports a unique constraint violation on insert.
	ErrDuplicateKey = errors.New("store: duplicate key")
	// ErrUnavailable wraps backend failures such as connection loss.
	ErrUnavailable = errors.New("store: unavailable")
)

// Store is the persistence contract used by the chat service.
type Store interface {
	FindChat(ctx context.Context, chatID string) (chat.Chat, error)
	FindChatByPersonality(ctx context.Context, personalityID string) (chat.Chat, error)
	InsertChat(ctx context.Context, c chat.Chat) error
	UpdateChatSummary(ctx context.Context, chatID, lastMessage string, at time.Time) error
	ListChats(ctx context.Context) ([]chat.Chat, error)

	// InsertMessage stamps msg with its insert-time id and timestamp.
	InsertMessage(ctx context.Context, msg *chat.Message) error
	// ListMessages returns up to limit messages in chronological order.
	ListMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error)
	// ListRecentMessages returns the newest limit messages, newest first.
	ListRecentMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error)

	Ping(ctx context.Context) error
	Close() error
}

// clock is replaced in tests that need deterministic timestamps.
var clock = time.Now
