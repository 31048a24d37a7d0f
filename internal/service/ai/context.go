package ai

import (
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

// ContextWindow bounds the history turns sent between the system prompt and
// the current message.
const ContextWindow = 10

// BuildContext assembles the prompt sent to the completion service.
//
// recent holds the chat's latest messages in chronological order and ends with
// the message that triggered this build; that element is dropped and current
// is appended instead, so the triggering text is always the final user turn
// and never appears twice.
func BuildContext(systemPrompt string, recent []chat.Message, current string) []*schema.Message {
	history := recent
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	entries := make([]*schema.Message, 0, len(history)+2)
	entries = append(entries, schema.SystemMessage(systemPrompt))
	for _, msg := range history {
		if msg.SenderType == chat.SenderUser {
			entries = append(entries, schema.UserMessage(msg.Content))
		} else {
			entries = append(entries, schema.AssistantMessage(msg.Content, nil))
		}
	}
	entries = append(entries, schema.UserMessage(current))
	return entries
}
