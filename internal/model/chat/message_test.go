package chat

import (
	"sort"
	"testing"
	"time"
)

func TestStampAssignsDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	msg := Message{ChatID: "c1", Content: "hi"}
	msg.Stamp(now)

	if msg.ID == "" {
		t.Fatal("expected an id")
	}
	if !msg.Timestamp.Equal(now.Truncate(time.Millisecond)) {
		t.Fatalf("unexpected timestamp %v", msg.Timestamp)
	}
	if msg.Status != StatusSent || msg.Type != TypeText {
		t.Fatalf("unexpected defaults status=%s type=%s", msg.Status, msg.Type)
	}
}

func TestStampKeepsExistingIdentity(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg := Message{ID: "fixed", Timestamp: ts, Status: StatusDelivered}
	msg.Stamp(time.Now())

	if msg.ID != "fixed" || !msg.Timestamp.Equal(ts) || msg.Status != StatusDelivered {
		t.Fatalf("stamp overwrote existing fields: %+v", msg)
	}
}

func TestStampSameMillisecondIsInsertionOrdered(t *testing.T) {
	now := time.Now()
	msgs := make([]Message, 50)
	for i := range msgs {
		msgs[i].Content = string(rune('a' + i%26))
		msgs[i].Stamp(now)
	}

	shuffled := make([]Message, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		shuffled = append(shuffled, msgs[i])
	}
	sort.SliceStable(shuffled, func(i, j int) bool { return Less(shuffled[i], shuffled[j]) })

	for i := range msgs {
		if shuffled[i].ID != msgs[i].ID {
			t.Fatalf("position %d: got %s want %s", i, shuffled[i].ID, msgs[i].ID)
		}
	}
}

func TestSummaryBefore(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	a := Summary{ID: "a", LastMessageTime: &newer}
	b := Summary{ID: "b", LastMessageTime: &older}
	empty := Summary{ID: "c"}

	if !a.Before(b) {
		t.Fatal("newer chat should sort first")
	}
	if b.Before(a) {
		t.Fatal("older chat should not sort first")
	}
	if !b.Before(empty) {
		t.Fatal("chat with messages should sort before empty chat")
	}
	if empty.Before(a) || empty.Before(empty) {
		t.Fatal("empty chat should never sort first")
	}
}
