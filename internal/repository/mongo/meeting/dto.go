package meeting

import "hrm/backend/internal/entity"

type CreateRequest struct {
	Title     string `json:"title"     form:"title"`
	Date      string `json:"date"      form:"date"`
	StartTime string `json:"startTime" form:"startTime"`
	EndTime   string `json:"endTime"   form:"endTime"`
	Color     string `json:"color"     form:"color"`
}

type GetListResponse struct {
	entity.Meeting
	CreatedBy *entity.UserRef `json:"createdBy"`
}
