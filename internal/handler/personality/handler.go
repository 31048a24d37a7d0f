package personality

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/pkg/utils"
)

// Handler exposes the personality catalogue.
type Handler struct {
	personalities personality.Registry
}

// New creates the personality handler.
func New(personalities personality.Registry) *Handler {
	return &Handler{personalities: personalities}
}

// RegisterRoutes mounts the personality routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personalities", h.handleList)
	r.Get("/personalities/{personalityId}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personalities.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.personalities.Get(chi.URLParam(r, "personalityId"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "personality not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}
