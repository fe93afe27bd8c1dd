package attendance

import (
	"context"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/attendance"

	"github.com/Azure/go-autorest/autorest/date"
)

type Attendance interface {
	CheckIn(ctx context.Context) (entity.Attendance, error)
	CheckOut(ctx context.Context) (entity.Attendance, error)
	GetMyHistory(ctx context.Context) ([]entity.Attendance, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, error)
	GetMonthReport(ctx context.Context, month date.Date) ([]attendance.ReportRow, error)
}
