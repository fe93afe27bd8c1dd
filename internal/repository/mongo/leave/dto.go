package leave

import "hrm/backend/internal/entity"

type CreateRequest struct {
	Type      string `json:"type"      form:"type"   binding:"omitempty,oneof=Sick Casual Annual"`
	StartDate string `json:"startDate" form:"startDate"`
	EndDate   string `json:"endDate"   form:"endDate"`
	Reason    string `json:"reason"    form:"reason"`
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" form:"status"`
}

// GetListResponse is a leave with its requester resolved.
type GetListResponse struct {
	entity.Leave
	Employee *entity.UserRef `json:"employee"`
}
