package event

import "hrm/backend/internal/entity"

type CreateRequest struct {
	Title                string `json:"title"                form:"title"`
	Description          string `json:"description"          form:"description"`
	Category             string `json:"category"             form:"category"`
	StartDate            string `json:"startDate"            form:"startDate"`
	EndDate              string `json:"endDate"              form:"endDate"`
	Location             string `json:"location"             form:"location"`
	ImageURL             string `json:"imageUrl"             form:"imageUrl"`
	Capacity             *int   `json:"capacity"             form:"capacity"`
	RegistrationDeadline string `json:"registrationDeadline" form:"registrationDeadline"`
}

// UpdateRequest is merged over the stored event. Nil fields are kept.
type UpdateRequest struct {
	ID                   string  `json:"-"`
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Category             *string `json:"category"`
	StartDate            *string `json:"startDate"`
	EndDate              *string `json:"endDate"`
	Location             *string `json:"location"`
	ImageURL             *string `json:"imageUrl"`
	Capacity             *int    `json:"capacity"`
	RegistrationDeadline *string `json:"registrationDeadline"`
	Status               *string `json:"status"`
}

// GetListResponse is an event with its attendees and creator resolved.
type GetListResponse struct {
	entity.Event
	Attendees []*entity.UserRef `json:"attendees"`
	CreatedBy *entity.UserRef   `json:"createdBy"`
}
