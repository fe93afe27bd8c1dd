package message

import (
	"context"
	"net/http"
	"strings"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/pkg/repository/mongodb"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var conversationFields = []string{"name", "email", "department", "designation"}

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) messages() *mongo.Collection {
	return r.Collection(mongodb.Messages)
}

// GetConversations lists one summary per counterpart, most recently active
// first.
func (r Repository) GetConversations(ctx context.Context) ([]Conversation, error) {
	me, err := r.ActingUserID(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{bson.M{"sender": me}, bson.M{"receiver": me}}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	list, err := mongodb.FindAll[entity.Message](ctx, r.messages(), filter, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting messages")
	}

	users, err := r.ResolveUsers(ctx, participants(list), conversationFields...)
	if err != nil {
		return nil, err
	}

	return GroupConversations(me, list, users), nil
}

// GetThread returns the messages exchanged with other in time order and
// marks the ones received from other as read.
func (r Repository) GetThread(ctx context.Context, other string) ([]GetListResponse, error) {
	me, err := r.ActingUserID(ctx)
	if err != nil {
		return nil, err
	}

	otherID, err := mongodb.ParseID(other)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"sender": me, "receiver": otherID},
		bson.M{"sender": otherID, "receiver": me},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	list, err := mongodb.FindAll[entity.Message](ctx, r.messages(), filter, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting thread")
	}

	_, err = r.messages().UpdateMany(ctx,
		bson.M{"sender": otherID, "receiver": me, "read": false},
		bson.M{"$set": bson.M{"read": true, "updatedAt": r.Now()}},
	)
	if err != nil {
		return nil, mongodb.Internal(err, "marking thread read")
	}

	return r.resolve(ctx, list, "name", "email")
}

func (r Repository) Send(ctx context.Context, request SendRequest) (GetListResponse, error) {
	me, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	if strings.TrimSpace(request.ReceiverID) == "" || strings.TrimSpace(request.Message) == "" {
		return GetListResponse{}, web.NewRequestError(errors.New("Receiver and message are required"), http.StatusBadRequest)
	}

	receiver, err := mongodb.ParseID(request.ReceiverID)
	if err != nil {
		return GetListResponse{}, err
	}

	detail := entity.Message{
		Sender:   me,
		Receiver: receiver,
		Message:  request.Message,
	}
	detail.Touch(r.Now())

	res, err := r.messages().InsertOne(ctx, detail)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "sending message")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	list, err := r.resolve(ctx, []entity.Message{detail}, "name", "email")
	if err != nil {
		return GetListResponse{}, err
	}

	return list[0], nil
}

// GetUsers lists every other user as a possible message receiver.
func (r Repository) GetUsers(ctx context.Context) ([]entity.UserRef, error) {
	me, err := r.ActingUserID(ctx)
	if err != nil {
		return nil, err
	}

	projection := bson.M{}
	for _, f := range conversationFields {
		projection[f] = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(projection)

	list, err := mongodb.FindAll[entity.UserRef](ctx, r.Collection(mongodb.Users), bson.M{"_id": bson.M{"$ne": me}}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting users")
	}

	return list, nil
}

func (r Repository) resolve(ctx context.Context, list []entity.Message, fields ...string) ([]GetListResponse, error) {
	users, err := r.ResolveUsers(ctx, participants(list), fields...)
	if err != nil {
		return nil, err
	}

	response := make([]GetListResponse, 0, len(list))
	for _, m := range list {
		response = append(response, GetListResponse{
			Message:  m,
			Sender:   users[m.Sender],
			Receiver: users[m.Receiver],
		})
	}

	return response, nil
}

func participants(list []entity.Message) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, 2*len(list))
	for _, m := range list {
		ids = append(ids, m.Sender, m.Receiver)
	}
	return ids
}

// GroupConversations folds messages, newest first, into one summary per
// counterpart of me. Summaries keep the order in which counterparts are
// first seen. Messages to a counterpart that no longer exists are skipped.
func GroupConversations(me primitive.ObjectID, list []entity.Message, users map[primitive.ObjectID]*entity.UserRef) []Conversation {
	index := make(map[primitive.ObjectID]int)
	conversations := make([]Conversation, 0)

	for _, m := range list {
		other := m.Sender
		if m.Sender == me {
			other = m.Receiver
		}

		user, ok := users[other]
		if !ok {
			continue
		}

		i, seen := index[other]
		if !seen {
			i = len(conversations)
			index[other] = i
			conversations = append(conversations, Conversation{
				User:            user,
				LastMessage:     m.Message,
				LastMessageTime: m.CreatedAt,
			})
		}

		if m.Receiver == me && m.Sender == other && !m.Read {
			conversations[i].UnreadCount++
		}
	}

	return conversations
}
