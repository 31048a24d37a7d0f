package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	chatService "github.com/zhouzirui/persona-chat/backend/internal/service/chat"
	"github.com/zhouzirui/persona-chat/backend/pkg/utils"
)

// Handler serves chat listings and message exchange.
type Handler struct {
	chatSvc *chatService.Service
	logger  zerolog.Logger
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		logger:  logger,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats", h.handleListChats)
	r.Get("/chats/{chatId}/messages", h.handleListMessages)
	r.Post("/chats/{chatId}/messages", h.handleSendMessage)
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.chatSvc.ListChats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list chats failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to list chats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")

	messages, err := h.chatSvc.ListMessages(r.Context(), chatID)
	if err != nil {
		h.logger.Error().Err(err).Str("chat_id", chatID).Msg("list messages failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

type sendRequest struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")

	var payload sendRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ChatID != "" && payload.ChatID != chatID {
		utils.RespondError(w, http.StatusBadRequest, "chatId does not match path")
		return
	}

	reply, err := h.chatSvc.SendMessage(r.Context(), chatID, payload.Content)
	if err != nil {
		status, message := StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("chat_id", chatID).Msg("send message failed")
		}
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

// StatusFor maps chat service errors to an HTTP status and client message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, chatService.ErrContentRequired):
		return http.StatusBadRequest, "content is required"
	case errors.Is(err, chatService.ErrChatNotFound):
		return http.StatusNotFound, "chat not found"
	case errors.Is(err, chatService.ErrPersonalityNotFound):
		return http.StatusNotFound, "personality not found"
	default:
		return http.StatusInternalServerError, "failed to send message"
	}
}
