package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message. Only Read changes after creation.
type Message struct {
	BasicEntity `bson:",inline"`

	Sender   primitive.ObjectID `json:"sender"   bson:"sender"`
	Receiver primitive.ObjectID `json:"receiver" bson:"receiver"`
	Message  string             `json:"message"  bson:"message"`
	Read     bool               `json:"read"     bson:"read"`
}
