package system

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/persona-chat/backend/pkg/utils"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the API banner and health probe.
type Handler struct {
	store  Pinger
	logger zerolog.Logger
}

// New creates the system handler.
func New(store Pinger, logger zerolog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Root answers GET /api/.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Persona Chat API"})
}

// Health pings the store and reports 503 when it is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"store":  err.Error(),
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
