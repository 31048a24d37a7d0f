package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/persona-chat/backend/internal/metrics"
	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/service/ai"
	"github.com/zhouzirui/persona-chat/backend/internal/store"
)

// MessageLimit caps how many messages a single listing returns.
const MessageLimit = 1000

// FallbackReply is stored and returned when the completion service fails.
const FallbackReply = "Sorry, I'm having trouble responding right now. Try again in a moment!"

var (
	ErrChatNotFound        = fmt.Errorf("chat not found: %w", store.ErrNotFound)
	ErrPersonalityNotFound = fmt.Errorf("personality not found: %w", store.ErrNotFound)
	ErrContentRequired     = errors.New("message content is required")
)

// Service coordinates chats, messages and AI replies.
type Service struct {
	store         store.Store
	personalities personality.Registry
	completer     ai.Completer
	logger        zerolog.Logger
}

// NewService wires the chat service.
func NewService(st store.Store, personalities personality.Registry, completer ai.Completer, logger zerolog.Logger) *Service {
	return &Service{
		store:         st,
		personalities: personalities,
		completer:     completer,
		logger:        logger.With().Str("component", "chat_service").Logger(),
	}
}

// ListChats returns one summary per registered personality, newest activity
// first. Missing chats are created on the way.
func (s *Service) ListChats(ctx context.Context) ([]chat.Summary, error) {
	items := s.personalities.List()
	summaries := make([]chat.Summary, 0, len(items))

	for _, p := range items {
		c, err := s.ensureChat(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, chat.Summary{
			ID:              c.ID,
			PersonalityID:   p.ID,
			Name:            p.Name,
			Avatar:          p.Avatar,
			Description:     p.Description,
			LastMessage:     c.LastMessage,
			LastMessageTime: c.LastMessageTime,
			LastSeen:        p.LastSeen,
			UnreadCount:     c.UnreadCount,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Before(summaries[j])
	})
	return summaries, nil
}

func (s *Service) ensureChat(ctx context.Context, personalityID string) (chat.Chat, error) {
	c, err := s.store.FindChatByPersonality(ctx, personalityID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return chat.Chat{}, fmt.Errorf("find chat for %s: %w", personalityID, err)
	}

	c = chat.NewChat(personalityID)
	err = s.store.InsertChat(ctx, c)
	switch {
	case err == nil:
		metrics.ChatsProvisioned.Inc()
		s.logger.Info().Str("chat_id", c.ID).Str("personality_id", personalityID).Msg("chat provisioned")
		return c, nil
	case errors.Is(err, store.ErrDuplicateKey):
		// Lost the race to a concurrent listing; use the winner's record.
		existing, findErr := s.store.FindChatByPersonality(ctx, personalityID)
		if findErr != nil {
			return chat.Chat{}, fmt.Errorf("reload chat for %s: %w", personalityID, findErr)
		}
		return existing, nil
	default:
		return chat.Chat{}, fmt.Errorf("create chat for %s: %w", personalityID, err)
	}
}

// ListMessages returns a chat's history in chronological order. Unknown chats
// yield an empty list.
func (s *Service) ListMessages(ctx context.Context, chatID string) ([]chat.Message, error) {
	messages, err := s.store.ListMessages(ctx, chatID, MessageLimit)
	if err != nil {
		return nil, fmt.Errorf("list messages for %s: %w", chatID, err)
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	return messages, nil
}

// GetChat resolves a chat by id.
func (s *Service) GetChat(ctx context.Context, chatID string) (chat.Chat, error) {
	c, err := s.store.FindChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return chat.Chat{}, ErrChatNotFound
		}
		return chat.Chat{}, fmt.Errorf("find chat %s: %w", chatID, err)
	}
	return c, nil
}

// SendMessage stores the user's message and returns the personality's reply.
// Completion failures never surface as errors: a fallback reply is stored and
// returned instead, and the chat summary is left as it was.
func (s *Service) SendMessage(ctx context.Context, chatID, content string) (chat.Message, error) {
	_, reply, err := s.Exchange(ctx, chatID, content)
	return reply, err
}

// Exchange is SendMessage that also returns the stored user message.
func (s *Service) Exchange(ctx context.Context, chatID, content string) (chat.Message, chat.Message, error) {
	if strings.TrimSpace(content) == "" {
		return chat.Message{}, chat.Message{}, ErrContentRequired
	}

	c, err := s.GetChat(ctx, chatID)
	if err != nil {
		return chat.Message{}, chat.Message{}, err
	}

	p, ok := s.personalities.Get(c.PersonalityID)
	if !ok {
		return chat.Message{}, chat.Message{}, ErrPersonalityNotFound
	}

	userMsg := chat.Message{
		ChatID:     c.ID,
		SenderType: chat.SenderUser,
		SenderName: chat.UserSenderName,
		Content:    content,
		Status:     chat.StatusSent,
	}
	if err := s.store.InsertMessage(ctx, &userMsg); err != nil {
		return chat.Message{}, chat.Message{}, fmt.Errorf("store user message: %w", err)
	}
	metrics.MessagesStored.WithLabelValues(string(chat.SenderUser)).Inc()

	outcome := s.complete(ctx, c.ID, p, content)

	reply := chat.Message{
		ChatID:     c.ID,
		SenderType: chat.SenderAI,
		SenderName: p.Name,
		Status:     chat.StatusDelivered,
	}

	if outcome.OK() {
		metrics.Completions.WithLabelValues(s.completer.Name(), "success").Inc()
		reply.Content = outcome.Text
	} else {
		metrics.Completions.WithLabelValues(s.completer.Name(), "fallback").Inc()
		s.logger.Error().
			Err(outcome.Err).
			Str("chat_id", c.ID).
			Str("personality_id", p.ID).
			Str("provider", s.completer.Name()).
			Msg("completion failed, sending fallback reply")
		reply.Content = FallbackReply
	}

	// The user message is already stored; its reply must be stored too even
	// if the caller has gone away during the completion.
	writeCtx := context.WithoutCancel(ctx)
	if err := s.store.InsertMessage(writeCtx, &reply); err != nil {
		return chat.Message{}, chat.Message{}, fmt.Errorf("store ai message: %w", err)
	}
	metrics.MessagesStored.WithLabelValues(string(chat.SenderAI)).Inc()

	if outcome.OK() {
		if err := s.store.UpdateChatSummary(writeCtx, c.ID, reply.Content, reply.Timestamp); err != nil {
			return chat.Message{}, chat.Message{}, fmt.Errorf("update chat summary: %w", err)
		}
	}

	return userMsg, reply, nil
}

// complete loads the context window and asks the completer for a reply. A
// failure to load the window is reported as a failed outcome so the user
// message still gets a fallback reply.
func (s *Service) complete(ctx context.Context, chatID string, p personality.Personality, content string) ai.Outcome {
	// One extra so the window still holds ContextWindow turns once the
	// just-stored message is set aside as the current entry.
	recent, err := s.store.ListRecentMessages(ctx, chatID, ai.ContextWindow+1)
	if err != nil {
		return ai.Failure(fmt.Errorf("load context for %s: %w", chatID, err))
	}
	reverse(recent)

	entries := ai.BuildContext(p.SystemPrompt, recent, content)

	start := time.Now()
	outcome := s.completer.Complete(ctx, entries)
	metrics.CompletionLatency.WithLabelValues(s.completer.Name()).Observe(time.Since(start).Seconds())
	return outcome
}

func reverse(messages []chat.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
