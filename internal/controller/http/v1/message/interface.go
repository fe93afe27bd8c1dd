package message

import (
	"context"

	"hrm/backend/internal/entity"
	"hrm/backend/internal/repository/mongo/message"
)

type Message interface {
	GetConversations(ctx context.Context) ([]message.Conversation, error)
	GetThread(ctx context.Context, other string) ([]message.GetListResponse, error)
	Send(ctx context.Context, request message.SendRequest) (message.GetListResponse, error)
	GetUsers(ctx context.Context) ([]entity.UserRef, error)
}
