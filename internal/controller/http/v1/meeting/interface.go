package meeting

import (
	"context"

	"hrm/backend/internal/repository/mongo/meeting"
)

type Meeting interface {
	GetList(ctx context.Context) ([]meeting.GetListResponse, error)
	Create(ctx context.Context, request meeting.CreateRequest) (meeting.GetListResponse, error)
	Delete(ctx context.Context, id string) error
}
