package meeting

import (
	"context"
	"net/http"
	"testing"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func withRole(role string) context.Context {
	claims := auth.Claims{
		StandardClaims: jwt.StandardClaims{Subject: primitive.NewObjectID().Hex()},
		Role:           role,
	}
	return context.WithValue(context.Background(), auth.Key, claims)
}

// The cases below are rejected before the store is touched.
func TestCreateRejects(t *testing.T) {
	valid := CreateRequest{Title: "Sprint review", Date: "2026-11-02", StartTime: "10:00", EndTime: "11:00"}

	tests := []struct {
		name    string
		ctx     context.Context
		request CreateRequest
		status  int
	}{
		{"no claims", context.Background(), valid, http.StatusUnauthorized},
		{"employee", withRole(auth.RoleEmployee), valid, http.StatusForbidden},
		{"missing title", withRole(auth.RoleAdmin), CreateRequest{Date: "2026-11-02", StartTime: "10:00", EndTime: "11:00"}, http.StatusBadRequest},
		{"bad date", withRole(auth.RoleAdmin), CreateRequest{Title: "x", Date: "next monday", StartTime: "10:00", EndTime: "11:00"}, http.StatusBadRequest},
	}

	repo := NewRepository(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(tt.ctx, tt.request)
			if got := web.StatusOf(err); got != tt.status {
				t.Errorf("status = %d, want %d (%v)", got, tt.status, err)
			}
		})
	}
}

func TestDeleteRejects(t *testing.T) {
	repo := NewRepository(nil)

	if _, err := repo.GetList(context.Background()); web.StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("list without claims: %v", err)
	}
	if err := repo.Delete(withRole(auth.RoleEmployee), primitive.NewObjectID().Hex()); web.StatusOf(err) != http.StatusForbidden {
		t.Errorf("employee delete: %v", err)
	}
	if err := repo.Delete(withRole(auth.RoleAdmin), "not-an-id"); web.StatusOf(err) != http.StatusBadRequest {
		t.Errorf("bad id: %v", err)
	}
}
