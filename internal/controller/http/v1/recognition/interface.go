package recognition

import (
	"context"

	"hrm/backend/internal/repository/mongo/recognition"
)

type Recognition interface {
	GetList(ctx context.Context) ([]recognition.GetListResponse, error)
	Create(ctx context.Context, request recognition.CreateRequest) (recognition.GetListResponse, error)
	Stats(ctx context.Context) (recognition.StatsResponse, error)
	UserStats(ctx context.Context, userID string) (recognition.UserStatsResponse, error)
}
