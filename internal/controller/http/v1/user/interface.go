package user

import (
	"context"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/user"
)

type User interface {
	GetList(ctx context.Context) ([]entity.User, error)
	GetDetailById(ctx context.Context, id string) (entity.User, error)
	Register(ctx context.Context, request user.RegisterRequest) (user.Profile, error)
	UpdateColumns(ctx context.Context, request user.UpdateRequest) (user.UpdateResponse, error)
	Delete(ctx context.Context, id string) error
}
