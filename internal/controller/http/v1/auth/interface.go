package auth

import (
	"context"
	"time"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/user"
)

type User interface {
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	Register(ctx context.Context, request user.RegisterRequest) (user.Profile, error)
	GetProfile(ctx context.Context) (user.GetProfileResponse, error)
	UpdateAvatar(ctx context.Context, avatar string) error
}

type Tokens interface {
	GenerateToken(userID, role string) (string, error)
}

type Throttle interface {
	Allowed(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
	RetryAfter(ctx context.Context, key string) time.Duration
}

type Mailer interface {
	Welcome(name, email string) error
}
