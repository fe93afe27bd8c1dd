package leave

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/leave"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLeave struct {
	created leave.CreateRequest
	update  leave.UpdateStatusRequest
}

func (f *fakeLeave) Create(_ context.Context, request leave.CreateRequest) (entity.Leave, error) {
	f.created = request
	return entity.Leave{Type: request.Type, Reason: request.Reason, Status: entity.LeavePending}, nil
}

func (f *fakeLeave) GetMyLeaves(context.Context) ([]entity.Leave, error) {
	return []entity.Leave{{Status: entity.LeavePending}}, nil
}

func (f *fakeLeave) GetList(context.Context) ([]leave.GetListResponse, error) {
	return []leave.GetListResponse{}, nil
}

func (f *fakeLeave) UpdateStatus(_ context.Context, request leave.UpdateStatusRequest) (leave.GetListResponse, error) {
	f.update = request
	if request.ID == "missing" {
		return leave.GetListResponse{}, web.NewRequestError(errors.New("Leave request not found"), http.StatusNotFound)
	}
	return leave.GetListResponse{
		Leave:    entity.Leave{BasicEntity: entity.BasicEntity{ID: primitive.NewObjectID()}, Status: request.Status},
		Employee: &entity.UserRef{Name: "Ada", Email: "ada@example.com"},
	}, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) LeaveDecision(_, email string, l entity.Leave) error {
	f.sent = append(f.sent, email+":"+l.Status)
	return f.err
}

func setup(mail Mailer) (*web.App, *fakeLeave) {
	f := &fakeLeave{}
	ctrl := NewController(f, mail)

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	app.Post("/leaves", ctrl.CreateLeave)
	app.Get("/leaves/my-leaves", ctrl.GetMyLeaves)
	app.Get("/leaves", ctrl.GetLeaveList)
	app.Put("/leaves/:id/status", ctrl.UpdateLeaveStatus)

	return app, f
}

func do(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestCreateLeave(t *testing.T) {
	app, f := setup(nil)

	rec := do(app, http.MethodPost, "/leaves", `{"type":"Sick","startDate":"2026-03-01","endDate":"2026-03-02","reason":"flu"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if f.created.StartDate != "2026-03-01" || f.created.Reason != "flu" {
		t.Errorf("request not forwarded: %+v", f.created)
	}

	var body struct {
		Data entity.Leave `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Status != entity.LeavePending {
		t.Errorf("status = %q", body.Data.Status)
	}
}

func TestCreateLeaveRejects(t *testing.T) {
	app, _ := setup(nil)

	tests := map[string]string{
		"missing reason": `{"type":"Sick","startDate":"2026-03-01","endDate":"2026-03-02"}`,
		"unknown type":   `{"type":"Holiday","startDate":"2026-03-01","endDate":"2026-03-02","reason":"x"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if rec := do(app, http.MethodPost, "/leaves", body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestUpdateLeaveStatus(t *testing.T) {
	mail := &fakeMailer{}
	app, f := setup(mail)

	rec := do(app, http.MethodPut, "/leaves/abc/status", `{"status":"Approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if f.update.ID != "abc" || f.update.Status != entity.LeaveApproved {
		t.Errorf("request = %+v", f.update)
	}
	if len(mail.sent) != 1 || mail.sent[0] != "ada@example.com:Approved" {
		t.Errorf("mail = %v", mail.sent)
	}

	if rec = do(app, http.MethodPut, "/leaves/missing/status", `{"status":"Rejected"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d", rec.Code)
	}
	if len(mail.sent) != 1 {
		t.Errorf("mail sent for a failed update: %v", mail.sent)
	}
}

func TestUpdateLeaveStatusMailFailure(t *testing.T) {
	app, _ := setup(&fakeMailer{err: errors.New("smtp down")})

	if rec := do(app, http.MethodPut, "/leaves/abc/status", `{"status":"Rejected"}`); rec.Code != http.StatusOK {
		t.Errorf("status = %d: %s", rec.Code, rec.Body)
	}
}
