package event

import (
	"context"

	"hrm/backend/internal/repository/mongo/event"
)

type Event interface {
	GetList(ctx context.Context) ([]event.GetListResponse, error)
	GetUpcoming(ctx context.Context) ([]event.GetListResponse, error)
	GetPast(ctx context.Context) ([]event.GetListResponse, error)
	Create(ctx context.Context, request event.CreateRequest) (event.GetListResponse, error)
	Update(ctx context.Context, request event.UpdateRequest) (event.GetListResponse, error)
	Delete(ctx context.Context, id string) error
	Register(ctx context.Context, id string) (event.GetListResponse, error)
	Unregister(ctx context.Context, id string) (event.GetListResponse, error)
}
