package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryConference = "Conference"
	CategoryWorkshop   = "Workshop"
	CategoryExpo       = "Expo"
	CategoryForum      = "Forum"
	CategorySymposium  = "Symposium"

	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventPast      = "past"
	EventCancelled = "cancelled"

	DefaultEventCapacity = 100
)

type Event struct {
	BasicEntity `bson:",inline"`

	Title                string               `json:"title"                bson:"title"`
	Description          string               `json:"description"          bson:"description"`
	Category             string               `json:"category"             bson:"category"`
	StartDate            time.Time            `json:"startDate"            bson:"startDate"`
	EndDate              time.Time            `json:"endDate"              bson:"endDate"`
	Location             string               `json:"location"             bson:"location"`
	ImageURL             string               `json:"imageUrl"             bson:"imageUrl"`
	Capacity             int                  `json:"capacity"             bson:"capacity"`
	Attendees            []primitive.ObjectID `json:"attendees"            bson:"attendees"`
	RegistrationDeadline time.Time            `json:"registrationDeadline" bson:"registrationDeadline"`
	Status               string               `json:"status"               bson:"status"`
	CreatedBy            primitive.ObjectID   `json:"createdBy"            bson:"createdBy"`
}
