package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FeedAppreciation = "Appreciation"
	FeedAnnouncement = "Announcement"
	FeedGeneral      = "General"
)

type Feed struct {
	BasicEntity `bson:",inline"`

	SenderID    primitive.ObjectID   `json:"senderId"              bson:"senderId"`
	RecipientID *primitive.ObjectID  `json:"recipientId,omitempty" bson:"recipientId,omitempty"`
	Type        string               `json:"type"                  bson:"type"`
	Content     FeedContent          `json:"content"               bson:"content"`
	Likes       []primitive.ObjectID `json:"likes"                 bson:"likes"`
	Comments    []Comment            `json:"comments"              bson:"comments"`
	Points      int                  `json:"points"                bson:"points"`
	Badge       string               `json:"badge,omitempty"       bson:"badge,omitempty"`
}

type FeedContent struct {
	Title string   `json:"title,omitempty" bson:"title,omitempty"`
	Body  string   `json:"body"            bson:"body"`
	Tags  []string `json:"tags"            bson:"tags"`
}

type Comment struct {
	ID        primitive.ObjectID `json:"id"        bson:"_id"`
	UserID    primitive.ObjectID `json:"userId"    bson:"userId"`
	Text      string             `json:"text"      bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
