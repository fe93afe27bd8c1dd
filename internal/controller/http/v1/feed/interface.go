package feed

import (
	"context"

	"hrm/backend/internal/repository/mongo/feed"
)

type Feed interface {
	GetList(ctx context.Context) ([]feed.GetListResponse, error)
	Create(ctx context.Context, request feed.CreateRequest) (feed.GetListResponse, error)
	ToggleLike(ctx context.Context, id string) (feed.GetListResponse, error)
	AddComment(ctx context.Context, id string, request feed.CommentRequest) (feed.GetListResponse, error)
	Delete(ctx context.Context, id string) error
}
