package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/model/personality"
	"github.com/zhouzirui/persona-chat/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/persona-chat/backend/internal/service/chat"
	"github.com/zhouzirui/persona-chat/backend/internal/store"
)

type stubCompleter struct {
	outcome ai.Outcome
}

func (s stubCompleter) Complete(context.Context, []*schema.Message) ai.Outcome { return s.outcome }
func (stubCompleter) Name() string                                               { return "stub" }

func setupRouter(t *testing.T, outcome ai.Outcome) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	svc := chatservice.NewService(store.NewMemoryStore(), personality.Default(), stubCompleter{outcome: outcome}, zerolog.Nop())

	r := chi.NewRouter()
	New(svc, zerolog.Nop()).RegisterRoutes(r)
	return r, svc
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func listChats(t *testing.T, r http.Handler) []map[string]any {
	t.Helper()
	resp := do(r, http.MethodGet, "/chats", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func chatIDFor(t *testing.T, r http.Handler, personalityID string) string {
	t.Helper()
	for _, c := range listChats(t, r) {
		if c["personalityId"] == personalityID {
			return c["id"].(string)
		}
	}
	t.Fatalf("no chat for %s", personalityID)
	return ""
}

func TestListChatsShape(t *testing.T) {
	r, _ := setupRouter(t, ai.Success("hi"))

	chats := listChats(t, r)
	require.Len(t, chats, len(personality.Seed()))

	first := chats[0]
	for _, key := range []string{"id", "personalityId", "name", "avatar", "description", "lastSeen", "unreadCount"} {
		assert.Contains(t, first, key)
	}
	assert.NotContains(t, first, "lastMessage")
	assert.NotContains(t, first, "systemPrompt")
}

func TestSendMessageReturnsReply(t *testing.T) {
	r, _ := setupRouter(t, ai.Success("Oh wow, a comedian."))
	chatID := chatIDFor(t, r, "alex_sarcastic")

	payload, _ := json.Marshal(map[string]string{"chatId": chatID, "content": "You're so funny!"})
	resp := do(r, http.MethodPost, "/chats/"+chatID+"/messages", payload)
	require.Equal(t, http.StatusOK, resp.Code)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &msg))
	assert.Equal(t, "ai", msg["senderType"])
	assert.Equal(t, "Alex", msg["senderName"])
	assert.Equal(t, "Oh wow, a comedian.", msg["content"])
	assert.Equal(t, "delivered", msg["messageStatus"])
	assert.Equal(t, "text", msg["messageType"])
	assert.Equal(t, chatID, msg["chatId"])

	resp = do(r, http.MethodGet, "/chats/"+chatID+"/messages", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var history []chat.Message
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, chat.SenderUser, history[0].SenderType)
	assert.Equal(t, "You", history[0].SenderName)
	assert.Equal(t, chat.SenderAI, history[1].SenderType)
}

func TestSendMessageFallbackIsStillOK(t *testing.T) {
	r, _ := setupRouter(t, ai.Failure(errors.New("upstream down")))
	chatID := chatIDFor(t, r, "maya_mentor")

	resp := do(r, http.MethodPost, "/chats/"+chatID+"/messages", []byte(`{"content":"help"}`))
	require.Equal(t, http.StatusOK, resp.Code)

	var msg chat.Message
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &msg))
	assert.Equal(t, chatservice.FallbackReply, msg.Content)
	assert.Equal(t, "Maya", msg.SenderName)
}

func TestSendMessageErrors(t *testing.T) {
	r, _ := setupRouter(t, ai.Success("hi"))
	chatID := chatIDFor(t, r, "zoe_tech")

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "unknown chat", path: "/chats/missing/messages", body: `{"content":"hi"}`, want: http.StatusNotFound},
		{name: "invalid json", path: "/chats/" + chatID + "/messages", body: `{`, want: http.StatusBadRequest},
		{name: "empty content", path: "/chats/" + chatID + "/messages", body: `{"content":"  "}`, want: http.StatusBadRequest},
		{name: "mismatched chat id", path: "/chats/" + chatID + "/messages", body: `{"chatId":"other","content":"hi"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(r, http.MethodPost, tt.path, []byte(tt.body))
			assert.Equal(t, tt.want, resp.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestListMessagesUnknownChatIsEmptyArray(t *testing.T) {
	r, _ := setupRouter(t, ai.Success("hi"))

	resp := do(r, http.MethodGet, "/chats/nope/messages", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestStatusFor(t *testing.T) {
	status, _ := StatusFor(store.ErrUnavailable)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, _ = StatusFor(chatservice.ErrPersonalityNotFound)
	assert.Equal(t, http.StatusNotFound, status)
}
