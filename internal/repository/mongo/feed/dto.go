package feed

import (
	"time"

	"hrm/backend/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateRequest struct {
	RecipientID string             `json:"recipientId"`
	Type        string             `json:"type"`
	Content     entity.FeedContent `json:"content"`
	Points      int                `json:"points"`
	Badge       string             `json:"badge"`
}

type CommentRequest struct {
	Text string `json:"text" form:"text"`
}

type CommentResponse struct {
	ID        primitive.ObjectID `json:"id"`
	User      *entity.UserRef    `json:"userId"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"createdAt"`
}

// GetListResponse is a feed item with every referenced user resolved.
type GetListResponse struct {
	entity.Feed
	Sender    *entity.UserRef   `json:"senderId"`
	Recipient *entity.UserRef   `json:"recipientId,omitempty"`
	Likes     []*entity.UserRef `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
}
