package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/persona-chat/backend/internal/handler/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/handler/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/handler/system"
	"github.com/zhouzirui/persona-chat/backend/internal/handler/ws"
	"github.com/zhouzirui/persona-chat/backend/internal/middleware"
	personalityModel "github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	chatService "github.com/zhouzirui/persona-chat/backend/internal/service/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(logger zerolog.Logger, st store.Store, personalities personalityModel.Registry, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Browser clients call from anywhere.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	systemHandler := system.New(st, logger)
	personalityHandler := personality.New(personalities)
	chatHandler := chat.New(chatSvc, logger)
	wsHandler := ws.New(chatSvc, logger)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", systemHandler.Health)

	r.Route("/api", func(api chi.Router) {
		api.Get("/", systemHandler.Root)
		personalityHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}
