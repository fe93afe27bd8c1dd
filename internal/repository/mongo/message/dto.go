package message

import (
	"time"

	"hrm/backend/internal/entity"
)

type SendRequest struct {
	ReceiverID string `json:"receiverId" form:"receiverId"`
	Message    string `json:"message"    form:"message"`
}

// Conversation summarizes the exchange with one counterpart.
type Conversation struct {
	User            *entity.UserRef `json:"user"`
	LastMessage     string          `json:"lastMessage"`
	LastMessageTime time.Time       `json:"lastMessageTime"`
	UnreadCount     int             `json:"unreadCount"`
}

type GetListResponse struct {
	entity.Message
	Sender   *entity.UserRef `json:"sender"`
	Receiver *entity.UserRef `json:"receiver"`
}
