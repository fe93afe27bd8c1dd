package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceHalfDay = "Half-Day"
	AttendanceLate    = "Late"
)

// Attendance is one check-in/check-out record of a user for a calendar day.
type Attendance struct {
	BasicEntity `bson:",inline"`

	EmployeeID primitive.ObjectID `json:"employeeId" bson:"employeeId"`
	Date       string             `json:"date"       bson:"date"`
	CheckIn    *time.Time         `json:"checkIn"    bson:"checkIn"`
	CheckOut   *time.Time         `json:"checkOut"   bson:"checkOut"`
	Status     string             `json:"status"     bson:"status"`
	TotalHours float64            `json:"totalHours" bson:"totalHours"`
}
