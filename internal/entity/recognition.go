package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultBadgeColor = "purple"

// Badges is the fixed vocabulary of recognition badges.
var Badges = []string{
	"Top Performer Badge",
	"Team Player Badge",
	"Innovation Badge",
	"Leadership Badge",
	"Excellence Badge",
	"Customer Focus Badge",
}

type Recognition struct {
	BasicEntity `bson:",inline"`

	Recipient  primitive.ObjectID `json:"recipient"  bson:"recipient"`
	Giver      primitive.ObjectID `json:"giver"      bson:"giver"`
	Message    string             `json:"message"    bson:"message"`
	Badge      string             `json:"badge"      bson:"badge"`
	BadgeColor string             `json:"badgeColor" bson:"badgeColor"`
}
