package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[string]entity.User

func (f fakeUsers) GetActing(_ context.Context, id string) (entity.User, error) {
	if len(id) != 24 {
		return entity.User{}, web.NewRequestError(errors.New("invalid id"), http.StatusBadRequest)
	}
	u, ok := f[id]
	if !ok {
		return entity.User{}, web.NewRequestError(errors.New("User not found"), http.StatusNotFound)
	}
	return u, nil
}

const (
	adminID    = "64b7f0c2a1b2c3d4e5f60001"
	employeeID = "64b7f0c2a1b2c3d4e5f60002"
	deletedID  = "64b7f0c2a1b2c3d4e5f60003"
)

func setup(t *testing.T) (*web.App, *auth.Auth) {
	t.Helper()

	a, err := auth.New("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	users := fakeUsers{
		adminID:    {Role: auth.RoleAdmin},
		employeeID: {Role: auth.RoleEmployee},
	}

	app := web.NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)), false)

	echo := func(c *web.Context) error {
		claims, err := auth.GetClaims(c.Ctx)
		if err != nil {
			return c.RespondError(err)
		}
		return c.Respond(map[string]interface{}{"data": claims.Role, "status": true}, http.StatusOK)
	}

	app.Get("/any", echo, Authenticate(a, users))
	app.Get("/admin", echo, Authenticate(a, users, auth.RoleAdmin))

	return app, a
}

func call(app *web.App, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	app, a := setup(t)

	token := func(id, role string) string {
		s, err := a.GenerateToken(id, role)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		role   string
	}{
		{"no token", "/any", "", http.StatusUnauthorized, ""},
		{"garbage token", "/any", "abc.def.ghi", http.StatusUnauthorized, ""},
		{"employee", "/any", token(employeeID, auth.RoleEmployee), http.StatusOK, auth.RoleEmployee},
		{"employee on admin route", "/admin", token(employeeID, auth.RoleEmployee), http.StatusForbidden, ""},
		{"stale admin claim", "/admin", token(employeeID, auth.RoleAdmin), http.StatusForbidden, ""},
		{"admin", "/admin", token(adminID, auth.RoleAdmin), http.StatusOK, auth.RoleAdmin},
		{"deleted user", "/any", token(deletedID, auth.RoleEmployee), http.StatusOK, ""},
		{"deleted admin", "/admin", token(deletedID, auth.RoleAdmin), http.StatusForbidden, ""},
		{"bad subject", "/any", token("not-an-id", auth.RoleEmployee), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(app, tt.path, tt.token)
			if rec.Code != tt.status {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if tt.status == http.StatusOK && body["data"] != tt.role {
				t.Errorf("role: got %v, want %q", body["data"], tt.role)
			}
			if tt.status != http.StatusOK && body["status"] != false {
				t.Errorf("error envelope: %v", body)
			}
		})
	}
}

func TestRequestIDAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(RequestID(), Logger(slog.New(slog.NewTextHandler(io.Discard, nil))), m.Handler())
	r.GET("/ping/:id", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping/1", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("request id not generated")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping/2", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != "abc" {
		t.Fatalf("request id not reused: %q", rec.Header().Get(RequestIDHeader))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ping/:id", "200")); got != 2 {
		t.Errorf("request counter: got %v, want 2", got)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden || strings.Contains(rec.Header().Get("Access-Control-Allow-Origin"), "evil") {
		t.Fatalf("foreign origin allowed: %d", rec.Code)
	}
}

func TestCORSWildcardDropsCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("credentials allowed with a wildcard origin: %q", got)
	}
}
