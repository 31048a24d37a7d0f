package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/service/ai"
	chatService "github.com/zhouzirui/persona-chat/backend/internal/service/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/store"
)

type nopCompleter struct{}

func (nopCompleter) Complete(context.Context, []*schema.Message) ai.Outcome { return ai.Success("ok") }
func (nopCompleter) Name() string                                           { return "nop" }

func newTestRouter() http.Handler {
	st := store.NewMemoryStore()
	registry := personality.Default()
	svc := chatService.NewService(st, registry, nopCompleter{}, zerolog.Nop())
	return NewRouter(zerolog.Nop(), st, registry, svc)
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/", http.StatusOK},
		{http.MethodGet, "/api/chats", http.StatusOK},
		{http.MethodGet, "/api/personalities", http.StatusOK},
		{http.MethodGet, "/api/chats/unknown/messages", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(tt.method, tt.path, nil))
		if resp.Code != tt.want {
			t.Fatalf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, resp.Code)
		}
	}
}

func TestRouterCORS(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/chats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestRouterMetricsExposeRequests(t *testing.T) {
	r := newTestRouter()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/chats", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(resp.Body.String(), "persona_chat_http_requests_total") {
		t.Fatal("expected http request counter in metrics output")
	}
	if !strings.Contains(resp.Body.String(), "persona_chat_chats_provisioned_total") {
		t.Fatal("expected provisioning counter in metrics output")
	}
}
