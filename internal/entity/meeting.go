package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultMeetingColor = "bg-blue-400"

type Meeting struct {
	BasicEntity `bson:",inline"`

	Title     string             `json:"title"     bson:"title"`
	Date      time.Time          `json:"date"      bson:"date"`
	StartTime string             `json:"startTime" bson:"startTime"`
	EndTime   string             `json:"endTime"   bson:"endTime"`
	Color     string             `json:"color"     bson:"color"`
	CreatedBy primitive.ObjectID `json:"createdBy" bson:"createdBy"`
}
