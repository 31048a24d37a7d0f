package ai

import (
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

func history(n int) []chat.Message {
	out := make([]chat.Message, 0, n)
	for i := 0; i < n; i++ {
		sender := chat.SenderUser
		if i%2 == 1 {
			sender = chat.SenderAI
		}
		out = append(out, chat.Message{SenderType: sender, Content: fmt.Sprintf("turn %d", i)})
	}
	return out
}

func TestBuildContextShape(t *testing.T) {
	stored := append(history(12), chat.Message{SenderType: chat.SenderUser, Content: "now"})
	recent := stored[len(stored)-ContextWindow:]

	entries := BuildContext("be nice", recent, "now")

	require.Len(t, entries, 1+ContextWindow)
	assert.Equal(t, schema.System, entries[0].Role)
	assert.Equal(t, "be nice", entries[0].Content)

	last := entries[len(entries)-1]
	assert.Equal(t, schema.User, last.Role)
	assert.Equal(t, "now", last.Content)

	// History excludes the trigger, so "now" appears exactly once.
	count := 0
	for _, e := range entries {
		if e.Content == "now" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBuildContextWithTwelvePriorMessages(t *testing.T) {
	stored := append(history(12), chat.Message{SenderType: chat.SenderUser, Content: "current"})
	// The service fetches the window plus the trigger.
	window := stored[len(stored)-(ContextWindow+1):]

	entries := BuildContext("sys", window, "current")

	require.Len(t, entries, 1+ContextWindow+1)
	assert.Equal(t, schema.System, entries[0].Role)
	assert.Equal(t, "turn 2", entries[1].Content)
	assert.Equal(t, "turn 11", entries[ContextWindow].Content)
	assert.Equal(t, "current", entries[len(entries)-1].Content)
}

func TestBuildContextRoles(t *testing.T) {
	recent := []chat.Message{
		{SenderType: chat.SenderUser, Content: "hi"},
		{SenderType: chat.SenderAI, Content: "hello"},
		{SenderType: chat.SenderUser, Content: "how are you"},
	}

	entries := BuildContext("sys", recent, "how are you")

	require.Len(t, entries, 4)
	assert.Equal(t, schema.User, entries[1].Role)
	assert.Equal(t, schema.Assistant, entries[2].Role)
	assert.Equal(t, "hello", entries[2].Content)
	assert.Equal(t, schema.User, entries[3].Role)
}

func TestBuildContextEmptyHistory(t *testing.T) {
	entries := BuildContext("sys", nil, "first")

	require.Len(t, entries, 2)
	assert.Equal(t, schema.System, entries[0].Role)
	assert.Equal(t, "first", entries[1].Content)
}

func TestOutcome(t *testing.T) {
	ok := Success("text")
	assert.True(t, ok.OK())
	assert.Equal(t, "text", ok.Text)

	failed := Failure(&Error{Kind: KindNetwork, Provider: "test", Message: "boom"})
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Text)
}
