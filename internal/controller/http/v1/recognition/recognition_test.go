package recognition

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
	"hrm/backend/internal/repository/mongo/recognition"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecognition struct {
	created []entity.Recognition
	userID  string
}

func (f *fakeRecognition) GetList(context.Context) ([]recognition.GetListResponse, error) {
	return []recognition.GetListResponse{}, nil
}

func (f *fakeRecognition) Create(_ context.Context, request recognition.CreateRequest) (recognition.GetListResponse, error) {
	detail, err := recognition.NewRecognition(primitive.NewObjectID(), request)
	if err != nil {
		return recognition.GetListResponse{}, err
	}
	f.created = append(f.created, detail)
	return recognition.GetListResponse{Recognition: detail}, nil
}

func (f *fakeRecognition) Stats(context.Context) (recognition.StatsResponse, error) {
	return recognition.StatsResponse{
		TotalCount:  int64(len(f.created)),
		Leaderboard: []recognition.LeaderboardEntry{{User: &entity.UserRef{Name: "Ada"}, Count: 3}},
	}, nil
}

func (f *fakeRecognition) UserStats(_ context.Context, userID string) (recognition.UserStatsResponse, error) {
	f.userID = userID
	return recognition.UserStatsResponse{Received: 2, Given: 1}, nil
}

func setup() (*web.App, *fakeRecognition) {
	f := &fakeRecognition{}
	ctrl := NewController(f)

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	app.Get("/recognitions", ctrl.GetRecognitionList)
	app.Post("/recognitions", ctrl.CreateRecognition)
	app.Get("/recognitions/stats", ctrl.GetStats)
	app.Get("/recognitions/user/:userId", ctrl.GetUserStats)

	return app, f
}

func do(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestCreateRecognition(t *testing.T) {
	app, f := setup()
	recipient := primitive.NewObjectID().Hex()

	rec := do(app, http.MethodPost, "/recognitions", `{"recipient":"`+recipient+`","message":"thanks","badge":"Team Player Badge"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if len(f.created) != 1 || f.created[0].BadgeColor == "" {
		t.Errorf("created = %+v", f.created)
	}

	rec = do(app, http.MethodPost, "/recognitions", `{"recipient":"`+recipient+`","badge":"Team Player Badge"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Recipient, message, and badge are required") {
		t.Errorf("missing message: %d %s", rec.Code, rec.Body)
	}
}

func TestStats(t *testing.T) {
	app, f := setup()

	rec := do(app, http.MethodGet, "/recognitions/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data recognition.StatsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Data.Leaderboard) != 1 || body.Data.Leaderboard[0].Count != 3 {
		t.Errorf("leaderboard = %+v", body.Data.Leaderboard)
	}

	rec = do(app, http.MethodGet, "/recognitions/user/u7", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"received":2`) {
		t.Errorf("user stats: %d %s", rec.Code, rec.Body)
	}
	if f.userID != "u7" {
		t.Errorf("user id = %q", f.userID)
	}
}
