package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"

	"github.com/pkg/errors"
)

// UserLoader loads the user a token was issued for.
type UserLoader interface {
	GetActing(ctx context.Context, id string) (entity.User, error)
}

// Authenticate validates the bearer token and reloads the acting user. The
// stored role replaces the one in the token. A user deleted after the token
// was issued keeps no role, so handlers report it as not found. When roles
// are given the user must hold one of them.
func Authenticate(a *auth.Auth, users UserLoader, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("Authorization")

			parts := strings.Fields(authStr)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				err := errors.New("Not authorized, no token")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(errors.New("Not authorized, token failed"), http.StatusUnauthorized))
			}

			user, err := users.GetActing(c.Ctx, claims.UserID())
			switch web.StatusOf(err) {
			case 0:
				claims.Role = user.Role
			case http.StatusNotFound:
				claims.Role = ""
			case http.StatusBadRequest:
				return c.RespondError(web.NewRequestError(errors.New("Not authorized, token failed"), http.StatusUnauthorized))
			default:
				return c.RespondError(err)
			}

			if len(role) > 0 && !claims.Authorized(role...) {
				return c.RespondError(web.NewRequestError(errors.New("Not authorized as an admin"), http.StatusForbidden))
			}

			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}

		return h
	}

	return m
}
