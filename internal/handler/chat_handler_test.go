// Package handler 提供对话 SSE 接口的单元测试
package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eraywen/lumen-blog/internal/config"
	"github.com/eraywen/lumen-blog/internal/middleware"
	"github.com/eraywen/lumen-blog/internal/model"
	"github.com/eraywen/lumen-blog/internal/repository"
	"github.com/eraywen/lumen-blog/internal/service"
	"github.com/eraywen/lumen-blog/internal/service/auth"
	"github.com/eraywen/lumen-blog/internal/service/chat"
	"github.com/eraywen/lumen-blog/internal/service/completion"
	"github.com/eraywen/lumen-blog/internal/service/content"
	"github.com/eraywen/lumen-blog/internal/service/setting"
)

// memChatStore 内存聊天存储
type memChatStore struct {
	sessions map[string]*model.ChatSession
	messages map[string][]*model.ChatMessage
}

func newMemChatStore() *memChatStore {
	return &memChatStore{
		sessions: make(map[string]*model.ChatSession),
		messages: make(map[string][]*model.ChatMessage),
	}
}

func (m *memChatStore) ListSessions(ctx context.Context) ([]*model.ChatSession, error) {
	out := make([]*model.ChatSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *memChatStore) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	return m.sessions[id], nil
}

func (m *memChatStore) GetMessages(ctx context.Context, sessionID string) ([]*model.ChatMessage, error) {
	return m.messages[sessionID], nil
}

func (m *memChatStore) SaveSession(ctx context.Context, session *model.ChatSession, messages []*model.ChatMessage) error {
	m.sessions[session.ID] = session
	m.messages[session.ID] = messages
	return nil
}

func (m *memChatStore) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	delete(m.messages, id)
	return nil
}

// stubCompleter 可编程的流式回复后端
type stubCompleter struct {
	fragments    []string
	err          error
	beforeStream func()
}

func (s *stubCompleter) StreamReply(ctx context.Context, system string, history []completion.Message, modelKey string, onToken func(string)) error {
	if s.beforeStream != nil {
		s.beforeStream()
	}
	for _, f := range s.fragments {
		onToken(f)
	}
	return s.err
}

func newChatTestServices(completer chat.Completer) *service.Services {
	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: "s3cret"},
		Auth:  config.AuthConfig{JWTSecret: "test-secret"},
	}
	store := newMemChatStore()
	repos := repository.NewRepositories(nil, nil)
	return &service.Services{
		Auth:       auth.NewService(cfg),
		Chat:       chat.NewService(store, func(string) chat.Store { return newMemChatStore() }, completer),
		Completion: completion.NewServiceWithProviders(map[string]completion.Provider{}),
		Content:    content.NewService(repos),
		Setting:    setting.NewService(repos.Setting),
		Config:     cfg,
	}
}

func newChatTestRouter(svcs *service.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(svcs.Auth))
	h := NewChatHandler(svcs)
	r.POST("/send", h.Send)
	return r
}

func postSend(r *gin.Engine, guestID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-ID", guestID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sseEvents 提取响应中的事件名序列
func sseEvents(body string) []string {
	var events []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "event:") {
			events = append(events, strings.TrimSpace(strings.TrimPrefix(line, "event:")))
		}
	}
	return events
}

func TestSendStreamEventSequence(t *testing.T) {
	svcs := newChatTestServices(&stubCompleter{fragments: []string{"你", "好"}})
	r := newChatTestRouter(svcs)

	w := postSend(r, "client-1", `{"text":"打个招呼"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("content type = %q", ct)
	}

	events := sseEvents(w.Body.String())
	// 零或多个 token 事件，之后恰好一个终结事件
	if len(events) != 3 {
		t.Fatalf("events = %v, want [token token done]", events)
	}
	if events[0] != "token" || events[1] != "token" {
		t.Errorf("leading events = %v, want token token", events[:2])
	}
	if events[2] != "done" {
		t.Errorf("terminal event = %q, want done", events[2])
	}
	if !strings.Contains(w.Body.String(), "session_id") {
		t.Error("done event missing session id")
	}
}

func TestSendStreamFailureEndsWithErrorEvent(t *testing.T) {
	svcs := newChatTestServices(&stubCompleter{
		fragments: []string{"部分"},
		err:       errors.New("connection reset"),
	})
	r := newChatTestRouter(svcs)

	w := postSend(r, "client-2", `{"text":"问题"}`)
	events := sseEvents(w.Body.String())
	if len(events) == 0 {
		t.Fatalf("no events in body: %s", w.Body.String())
	}
	if events[len(events)-1] != "error" {
		t.Fatalf("terminal event = %q, want error (events %v)", events[len(events)-1], events)
	}
	for _, e := range events[:len(events)-1] {
		if e != "token" {
			t.Errorf("non-token event %q before the terminal event", e)
		}
	}
	if !strings.Contains(w.Body.String(), "**Error:**") {
		t.Error("error event missing the persisted error marker")
	}
}

func TestSendSupersededEndsWithSupersededEvent(t *testing.T) {
	completer := &stubCompleter{fragments: []string{"过期"}}
	svcs := newChatTestServices(completer)
	r := newChatTestRouter(svcs)

	// 流开始后对话被重置，残余片段不得以 token 事件发出
	completer.beforeStream = func() {
		svcs.Chat.Conversation(auth.GuestCaller("client-3")).Reset()
	}

	w := postSend(r, "client-3", `{"text":"问题"}`)
	events := sseEvents(w.Body.String())
	if len(events) != 1 || events[0] != "superseded" {
		t.Errorf("events = %v, want [superseded]", events)
	}
}

func TestSendRejectsUnusableModel(t *testing.T) {
	svcs := newChatTestServices(&stubCompleter{fragments: []string{"ok"}})
	r := newChatTestRouter(svcs)

	// 付费模型对访客不可用
	w := postSend(r, "client-4", `{"text":"问题","model":"deepseek-chat"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("paid model for guest: status = %d, want 400", w.Code)
	}

	w = postSend(r, "client-4", `{"text":"问题","model":"no-such-model"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown model: status = %d, want 400", w.Code)
	}
}
