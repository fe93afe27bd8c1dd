package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeaveSick   = "Sick"
	LeaveCasual = "Casual"
	LeaveAnnual = "Annual"

	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

type Leave struct {
	BasicEntity `bson:",inline"`

	EmployeeID primitive.ObjectID  `json:"employeeId"           bson:"employeeId"`
	Type       string              `json:"type"                 bson:"type"`
	StartDate  time.Time           `json:"startDate"            bson:"startDate"`
	EndDate    time.Time           `json:"endDate"              bson:"endDate"`
	Reason     string              `json:"reason"               bson:"reason"`
	Status     string              `json:"status"               bson:"status"`
	ApprovedBy *primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
}
