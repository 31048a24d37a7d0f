package chat

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// SenderType identifies who authored a message.
type SenderType string

const (
	SenderUser SenderType = "user"
	SenderAI   SenderType = "ai"
)

// Status is descriptive delivery metadata; it never transitions after insert.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// Type is the content kind. Only TypeText is produced today.
type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeAudio Type = "audio"
)

// UserSenderName is the display name stored on user-authored messages.
const UserSenderName = "You"

// Message is a single turn in a chat.
type Message struct {
	ID         string     `json:"id"`
	ChatID     string     `json:"chatId"`
	SenderType SenderType `json:"senderType"`
	SenderName string     `json:"senderName"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
	Status     Status     `json:"messageStatus"`
	Type       Type       `json:"messageType"`
}

// Stamp assigns the insert-time identity of m when it has none: a millisecond
// timestamp and a ULID drawn from the same millisecond. The process-wide
// monotonic entropy makes IDs strictly increasing within a millisecond, so
// ordering by (Timestamp, ID) follows insertion order.
func (m *Message) Stamp(now time.Time) {
	if m.Timestamp.IsZero() {
		m.Timestamp = now.UTC().Truncate(time.Millisecond)
	}
	if m.ID == "" {
		m.ID = ulid.MustNew(ulid.Timestamp(m.Timestamp), ulid.DefaultEntropy()).String()
	}
	if m.Status == "" {
		m.Status = StatusSent
	}
	if m.Type == "" {
		m.Type = TypeText
	}
}

// Less orders messages chronologically, breaking timestamp ties by ID.
func Less(a, b Message) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return strings.Compare(a.ID, b.ID) < 0
}
