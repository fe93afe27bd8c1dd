package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/user"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUser struct {
	users    map[string]entity.User
	avatar   string
	register []user.RegisterRequest
}

func (f *fakeUser) GetByEmail(_ context.Context, email string) (entity.User, error) {
	u, ok := f.users[email]
	if !ok {
		return entity.User{}, web.NewRequestError(errors.New("Invalid email or password"), http.StatusUnauthorized)
	}
	return u, nil
}

func (f *fakeUser) Register(_ context.Context, request user.RegisterRequest) (user.Profile, error) {
	if _, ok := f.users[request.Email]; ok {
		return user.Profile{}, web.NewRequestError(errors.New("User already exists"), http.StatusConflict)
	}
	f.register = append(f.register, request)
	return user.Profile{Name: request.Name, Email: request.Email, Role: auth.RoleEmployee}, nil
}

func (f *fakeUser) GetProfile(context.Context) (user.GetProfileResponse, error) {
	return user.GetProfileResponse{Name: "Bob"}, nil
}

func (f *fakeUser) UpdateAvatar(_ context.Context, avatar string) error {
	f.avatar = avatar
	return nil
}

type fakeThrottle struct {
	fails map[string]int
	max   int
}

func (f *fakeThrottle) Allowed(_ context.Context, key string) (bool, error) {
	return f.fails[key] < f.max, nil
}

func (f *fakeThrottle) Fail(_ context.Context, key string) error {
	f.fails[key]++
	return nil
}

func (f *fakeThrottle) Reset(_ context.Context, key string) error {
	delete(f.fails, key)
	return nil
}

func (f *fakeThrottle) RetryAfter(context.Context, string) time.Duration {
	return time.Minute
}

type fakeMail struct{ sent []string }

func (f *fakeMail) Welcome(_, email string) error {
	f.sent = append(f.sent, email)
	return nil
}

type fixture struct {
	app      *web.App
	auth     *auth.Auth
	users    *fakeUser
	throttle *fakeThrottle
	mail     *fakeMail
	dir      string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	hash, err := user.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}

	bob := entity.User{Name: "Bob", Email: "bob@hrm.io", Role: auth.RoleEmployee, Password: hash}
	bob.ID = primitive.NewObjectID()

	a, err := auth.New("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	f := fixture{
		auth:     a,
		users:    &fakeUser{users: map[string]entity.User{bob.Email: bob}},
		throttle: &fakeThrottle{fails: map[string]int{}, max: 3},
		mail:     &fakeMail{},
		dir:      t.TempDir(),
	}

	ctrl := NewController(f.users, a, f.throttle, f.mail, Media{Dir: f.dir, Prefix: "/uploads"})

	f.app = web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	f.app.Post("/login", ctrl.SignIn)
	f.app.Post("/register", ctrl.Register)
	f.app.Get("/profile", ctrl.GetProfile)
	f.app.Post("/upload-avatar", ctrl.UploadAvatar)

	return f
}

func (f fixture) post(path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestSignIn(t *testing.T) {
	f := newFixture(t)

	rec, body := f.post("/login", `{"email":" BOB@hrm.io ","password":"correct horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d %s", rec.Code, rec.Body)
	}

	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	claims, err := f.auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	if claims.Role != auth.RoleEmployee || data["email"] != "bob@hrm.io" {
		t.Errorf("unexpected sign in payload: %v", data)
	}
	if _, ok := data["password"]; ok {
		t.Error("password leaked")
	}
}

func TestSignInRejects(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"wrong password", `{"email":"bob@hrm.io","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"eve@hrm.io","password":"nope"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"bob@hrm.io"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := f.post("/login", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.status)
			}
			if body["status"] != false {
				t.Errorf("envelope: %v", body)
			}
			if tt.status == http.StatusUnauthorized && body["error"] != "Invalid email or password" {
				t.Errorf("message: %v", body["error"])
			}
		})
	}
}

func TestSignInThrottled(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		f.post("/login", `{"email":"bob@hrm.io","password":"nope"}`)
	}

	rec, _ := f.post("/login", `{"email":"bob@hrm.io","password":"correct horse"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("retry after: %q", rec.Header().Get("Retry-After"))
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	rec, body := f.post("/register", `{"name":"Ada","email":"ada@hrm.io","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d %s", rec.Code, rec.Body)
	}
	if _, ok := body["data"].(map[string]interface{})["token"]; ok {
		t.Error("register must not issue a token")
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "ada@hrm.io" {
		t.Errorf("welcome mail: %v", f.mail.sent)
	}

	if rec, _ = f.post("/register", `{"name":"Bob","email":"bob@hrm.io","password":"pw"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate: got %d, want 409", rec.Code)
	}
	if rec, _ = f.post("/register", `{"name":"X","email":"x@hrm.io","password":"pw","role":"Owner"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad role: got %d, want 400", rec.Code)
	}
}

func TestUploadAvatar(t *testing.T) {
	f := newFixture(t)

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("avatar", "me.png")
	part.Write(pngData.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d %s", rec.Code, rec.Body)
	}
	if !strings.HasPrefix(f.users.avatar, "/uploads/avatar-") {
		t.Fatalf("avatar path: %q", f.users.avatar)
	}
	if _, err := os.Stat(filepath.Join(f.dir, strings.TrimPrefix(f.users.avatar, "/uploads/"))); err != nil {
		t.Errorf("stored file: %v", err)
	}
}

func TestUploadAvatarMissingFile(t *testing.T) {
	f := newFixture(t)

	rec, body := f.post("/upload-avatar", `{}`)
	if rec.Code != http.StatusBadRequest || body["error"] != "Please upload a file" {
		t.Fatalf("got %d %v", rec.Code, body)
	}
}
