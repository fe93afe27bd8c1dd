package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hrm/backend/internal/auth"
	"hrm/backend/internal/commands"
	"hrm/backend/internal/pkg/config"
	"hrm/backend/internal/pkg/repository/mongodb"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// A fresh database served without running the migrate command must still
// refuse a second check-in on the same day.
func TestNewAppEnforcesOneCheckInPerDay(t *testing.T) {
	uri := os.Getenv("HRM_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("HRM_TEST_MONGO_URI not set")
	}
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := mongodb.New(ctx, mongodb.Config{URI: uri, Name: "hrm_serve_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = db.Drop(context.Background())
		_ = db.Close(context.Background())
	}()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err = commands.SeedAdmin(ctx, db, log, "Admin", "admin@example.com", "admin-pass"); err != nil {
		t.Fatal(err)
	}

	a, err := auth.New("serve-secret", 0)
	if err != nil {
		t.Fatal(err)
	}

	var cfg config.Config
	cfg.Media.Dir = t.TempDir()
	cfg.Media.Prefix = "/uploads"

	app, err := newApp(ctx, cfg, db, nil, a, nil, prometheus.NewRegistry(), log)
	if err != nil {
		t.Fatal(err)
	}

	do := func(path, token, body string) (int, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, req)

		var out map[string]any
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
		return rec.Code, out
	}

	code, body := do("/api/auth/login", "", `{"email":"admin@example.com","password":"admin-pass"}`)
	if code != http.StatusOK {
		t.Fatalf("login: %d %v", code, body)
	}
	token := body["data"].(map[string]any)["token"].(string)

	if code, body = do("/api/attendance/check-in", token, ""); code != http.StatusCreated {
		t.Fatalf("first check-in: %d %v", code, body)
	}
	if code, body = do("/api/attendance/check-in", token, ""); code != http.StatusConflict {
		t.Errorf("second check-in: %d %v", code, body)
	}

	n, err := db.Collection(mongodb.Attendance).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("attendance records = %d, want 1", n)
	}
}
