// Package auth issues and validates the bearer tokens used by the API.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hrm/backend/foundation/web"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// These are the expected values for Claims.Role.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// UserID returns the id of the user the token was issued for.
func (c Claims) UserID() string {
	return c.Subject
}

// Authorized returns true if the claims has at least one of the provided roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, has := range roles {
		if c.Role == has {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients. It can generate a token for a
// set of user claims and recreate the claims by parsing the token.
type Auth struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
	parser *jwt.Parser
}

// New creates an *Auth signing HS256 tokens with the given secret.
func New(secret string, ttl time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
		method: jwt.SigningMethodHS256,
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Name}},
	}, nil
}

// GenerateToken generates a signed JWT token string for the given user.
func (a *Auth) GenerateToken(userID, role string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.ttl).Unix(),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(a.method, claims)

	str, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return str, nil
}

// ValidateToken recreates the Claims that were used to generate a token. It
// verifies that the token was signed using our key.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	if claims.Subject == "" {
		return Claims{}, errors.New("token has no subject")
	}

	return claims, nil
}

// GetClaims returns the claims stored in ctx by the authentication middleware.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
