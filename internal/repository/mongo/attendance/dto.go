package attendance

import (
	"time"

	"hrm/backend/internal/entity"
)

type Filter struct {
	Date *string
}

// GetListResponse is an attendance record with its employee resolved.
type GetListResponse struct {
	entity.Attendance
	Employee *entity.UserRef `json:"employee"`
}

// ReportRow is one line of the monthly attendance export.
type ReportRow struct {
	Date       string
	Name       string
	Email      string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     string
	TotalHours float64
}
