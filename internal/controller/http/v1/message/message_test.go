package message

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/message"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMessage struct {
	thread string
	sent   []message.SendRequest
}

func (f *fakeMessage) GetConversations(context.Context) ([]message.Conversation, error) {
	return []message.Conversation{{LastMessage: "hi", UnreadCount: 2}}, nil
}

func (f *fakeMessage) GetThread(_ context.Context, other string) ([]message.GetListResponse, error) {
	f.thread = other
	return []message.GetListResponse{}, nil
}

func (f *fakeMessage) Send(_ context.Context, request message.SendRequest) (message.GetListResponse, error) {
	if request.ReceiverID == "" || request.Message == "" {
		return message.GetListResponse{}, web.NewRequestError(errors.New("Receiver and message are required"), http.StatusBadRequest)
	}
	f.sent = append(f.sent, request)
	return message.GetListResponse{Message: entity.Message{Message: request.Message}}, nil
}

func (f *fakeMessage) GetUsers(context.Context) ([]entity.UserRef, error) {
	return []entity.UserRef{{Name: "Ada"}}, nil
}

func setup() (*web.App, *fakeMessage) {
	f := &fakeMessage{}
	ctrl := NewController(f)

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	app.Get("/messages/conversations", ctrl.GetConversations)
	app.Get("/messages/users", ctrl.GetChatUsers)
	app.Get("/messages/:userId", ctrl.GetThread)
	app.Post("/messages", ctrl.SendMessage)

	return app, f
}

func do(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestSendMessage(t *testing.T) {
	app, f := setup()

	rec := do(app, http.MethodPost, "/messages", `{"receiverId":"u2","message":"hello"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if len(f.sent) != 1 || f.sent[0].ReceiverID != "u2" {
		t.Errorf("sent = %+v", f.sent)
	}

	rec = do(app, http.MethodPost, "/messages", `{"receiverId":"u2"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Receiver and message are required") {
		t.Errorf("empty message: %d %s", rec.Code, rec.Body)
	}
}

func TestMessageRoutes(t *testing.T) {
	app, f := setup()

	if rec := do(app, http.MethodGet, "/messages/conversations", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"unreadCount":2`) {
		t.Errorf("conversations: %d %s", rec.Code, rec.Body)
	}
	if rec := do(app, http.MethodGet, "/messages/users", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ada") {
		t.Errorf("users: %d %s", rec.Code, rec.Body)
	}
	if rec := do(app, http.MethodGet, "/messages/u2", ""); rec.Code != http.StatusOK {
		t.Errorf("thread: status = %d", rec.Code)
	}
	if f.thread != "u2" {
		t.Errorf("thread with %q", f.thread)
	}
}
