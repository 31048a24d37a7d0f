package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	chatHandler "github.com/zhouzirui/persona-chat/backend/internal/handler/chat"
	chatService "github.com/zhouzirui/persona-chat/backend/internal/service/chat"
	"github.com/zhouzirui/persona-chat/backend/pkg/utils"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Handler runs the live chat socket. Each inbound message goes through the
// same pipeline as the REST send endpoint.
type Handler struct {
	chatSvc  *chatService.Service
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(chatSvc *chatService.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		logger:  logger.With().Str("component", "ws").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the socket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats/{chatId}/ws", h.handleWebSocket)
}

type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type outboundFrame struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")

	if _, err := h.chatSvc.GetChat(r.Context(), chatID); err != nil {
		if errors.Is(err, chatService.ErrChatNotFound) {
			utils.RespondError(w, http.StatusNotFound, "chat not found")
			return
		}
		h.logger.Error().Err(err).Str("chat_id", chatID).Msg("chat lookup failed")
		utils.RespondError(w, http.StatusInternalServerError, "failed to open chat")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("chat_id", chatID).Msg("upgrade failed")
		return
	}
	defer conn.Close()

	log := h.logger.With().Str("chat_id", chatID).Logger()
	log.Debug().Msg("connection opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go pingLoop(ctx, conn)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if frame.Type != "message" {
			h.write(conn, "error", map[string]string{"error": "unsupported frame type: " + frame.Type})
			continue
		}

		user, reply, err := h.chatSvc.Exchange(ctx, chatID, frame.Content)
		if err != nil {
			status, message := chatHandler.StatusFor(err)
			if status >= http.StatusInternalServerError {
				log.Error().Err(err).Msg("send message failed")
			}
			h.write(conn, "error", map[string]string{"error": message})
			continue
		}

		h.write(conn, "message", user)
		h.write(conn, "message", reply)
	}
}

func (h *Handler) write(conn *websocket.Conn, frameType string, data interface{}) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	frame := outboundFrame{
		Type:      frameType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Debug().Err(err).Str("type", frameType).Msg("write failed")
	}
}

// pingLoop keeps idle connections alive. WriteControl is safe to call
// alongside the reader loop's writes.
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
