package leave

import (
	"context"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/leave"
)

type Leave interface {
	Create(ctx context.Context, request leave.CreateRequest) (entity.Leave, error)
	GetMyLeaves(ctx context.Context) ([]entity.Leave, error)
	GetList(ctx context.Context) ([]leave.GetListResponse, error)
	UpdateStatus(ctx context.Context, request leave.UpdateStatusRequest) (leave.GetListResponse, error)
}

type Mailer interface {
	LeaveDecision(name, email string, leave entity.Leave) error
}
