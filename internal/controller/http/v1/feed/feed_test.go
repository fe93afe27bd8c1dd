package feed

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
	"hrm/backend/internal/repository/mongo/feed"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var me = primitive.NewObjectID()

type fakeFeed struct {
	item    entity.Feed
	created feed.CreateRequest
}

func (f *fakeFeed) response() feed.GetListResponse {
	return feed.Populate([]entity.Feed{f.item}, map[primitive.ObjectID]*entity.UserRef{me: {ID: me, Name: "Ada"}})[0]
}

func (f *fakeFeed) GetList(context.Context) ([]feed.GetListResponse, error) {
	return []feed.GetListResponse{f.response()}, nil
}

func (f *fakeFeed) Create(_ context.Context, request feed.CreateRequest) (feed.GetListResponse, error) {
	f.created = request
	item, err := feed.NewFeed(me, request)
	if err != nil {
		return feed.GetListResponse{}, err
	}
	f.item = item
	return f.response(), nil
}

func (f *fakeFeed) ToggleLike(_ context.Context, id string) (feed.GetListResponse, error) {
	if id != f.item.ID.Hex() {
		return feed.GetListResponse{}, web.NewRequestError(errors.New("Feed item not found"), http.StatusNotFound)
	}
	likes := make([]primitive.ObjectID, 0, len(f.item.Likes))
	found := false
	for _, l := range f.item.Likes {
		if l == me {
			found = true
			continue
		}
		likes = append(likes, l)
	}
	if !found {
		likes = append(likes, me)
	}
	f.item.Likes = likes
	return f.response(), nil
}

func (f *fakeFeed) AddComment(_ context.Context, _ string, request feed.CommentRequest) (feed.GetListResponse, error) {
	if strings.TrimSpace(request.Text) == "" {
		return feed.GetListResponse{}, web.NewRequestError(errors.New("Comment text is required"), http.StatusBadRequest)
	}
	f.item.Comments = append(f.item.Comments, entity.Comment{ID: primitive.NewObjectID(), UserID: me, Text: request.Text})
	return f.response(), nil
}

func (f *fakeFeed) Delete(context.Context, string) error {
	return nil
}

func setup() (*web.App, *fakeFeed) {
	f := &fakeFeed{item: entity.Feed{
		BasicEntity: entity.BasicEntity{ID: primitive.NewObjectID()},
		SenderID:    me,
		Likes:       []primitive.ObjectID{},
		Comments:    []entity.Comment{},
	}}
	ctrl := NewController(f)

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	app.Get("/feed", ctrl.GetFeed)
	app.Post("/feed", ctrl.CreateFeedItem)
	app.Put("/feed/:id/like", ctrl.ToggleLike)
	app.Post("/feed/:id/comment", ctrl.AddComment)
	app.Delete("/feed/:id", ctrl.DeleteFeedItem)

	return app, f
}

func do(app *web.App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

type item struct {
	Likes    []entity.UserRef `json:"likes"`
	Comments []struct {
		User entity.UserRef `json:"userId"`
		Text string         `json:"text"`
	} `json:"comments"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) item {
	t.Helper()
	var body struct {
		Data item `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body.Data
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	app, f := setup()
	path := "/feed/" + f.item.ID.Hex() + "/like"

	rec := do(app, http.MethodPut, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := decode(t, rec); len(got.Likes) != 1 || got.Likes[0].Name != "Ada" {
		t.Errorf("likes after first toggle = %+v", got.Likes)
	}

	rec = do(app, http.MethodPut, path, "")
	if got := decode(t, rec); len(got.Likes) != 0 {
		t.Errorf("likes after second toggle = %+v", got.Likes)
	}

	if rec = do(app, http.MethodPut, "/feed/"+primitive.NewObjectID().Hex()+"/like", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing item: status = %d", rec.Code)
	}
}

func TestAddComment(t *testing.T) {
	app, f := setup()
	path := "/feed/" + f.item.ID.Hex() + "/comment"

	rec := do(app, http.MethodPost, path, `{"text":"congrats"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	got := decode(t, rec)
	if len(got.Comments) != 1 || got.Comments[0].Text != "congrats" || got.Comments[0].User.Name != "Ada" {
		t.Errorf("comments = %+v", got.Comments)
	}

	if rec = do(app, http.MethodPost, path, `{"text":"  "}`); rec.Code != http.StatusBadRequest {
		t.Errorf("blank comment: status = %d", rec.Code)
	}
}

func TestCreateFeedItem(t *testing.T) {
	app, f := setup()

	rec := do(app, http.MethodPost, "/feed", `{"content":{"title":"Welcome","body":"Say hi to Ada"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if f.item.Type != entity.FeedGeneral {
		t.Errorf("type = %q", f.item.Type)
	}

	if rec = do(app, http.MethodPost, "/feed", `{"type":"Gossip","content":{"body":"x"}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown type: status = %d", rec.Code)
	}

	if rec = do(app, http.MethodDelete, "/feed/"+f.item.ID.Hex(), ""); rec.Code != http.StatusOK {
		t.Errorf("delete: status = %d", rec.Code)
	}
}
