package chat

import (
	"time"

	"github.com/google/uuid"
)

// Chat binds one personality to its message history and list summary.
type Chat struct {
	ID              string     `json:"id"`
	PersonalityID   string     `json:"personalityId"`
	LastMessage     *string    `json:"lastMessage,omitempty"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	UnreadCount     int        `json:"unreadCount"`
}

// NewChat returns an empty chat for the given personality.
func NewChat(personalityID string) Chat {
	return Chat{
		ID:            uuid.NewString(),
		PersonalityID: personalityID,
	}
}

// Summary is the chat list entry: the chat record merged with the
// personality's display metadata.
type Summary struct {
	ID              string     `json:"id"`
	PersonalityID   string     `json:"personalityId"`
	Name            string     `json:"name"`
	Avatar          string     `json:"avatar"`
	Description     string     `json:"description"`
	LastMessage     *string    `json:"lastMessage,omitempty"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	LastSeen        string     `json:"lastSeen"`
	UnreadCount     int        `json:"unreadCount"`
}

// Before reports whether s sorts after other in the chat list, i.e. s has the
// older last message. A chat without messages is older than any chat with one.
func (s Summary) Before(other Summary) bool {
	switch {
	case s.LastMessageTime == nil:
		return false
	case other.LastMessageTime == nil:
		return true
	default:
		return s.LastMessageTime.After(*other.LastMessageTime)
	}
}
