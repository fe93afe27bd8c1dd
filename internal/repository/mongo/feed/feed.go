package feed

import (
	"context"
	"net/http"
	"strings"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/pkg/repository/mongodb"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var types = []string{entity.FeedAppreciation, entity.FeedAnnouncement, entity.FeedGeneral}

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) feeds() *mongo.Collection {
	return r.Collection(mongodb.Feeds)
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	list, err := mongodb.FindAll[entity.Feed](ctx, r.feeds(), bson.M{}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting feed")
	}

	return r.resolve(ctx, list)
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (GetListResponse, error) {
	adminID, err := r.ActingUserID(ctx, auth.RoleAdmin)
	if err != nil {
		return GetListResponse{}, err
	}

	detail, err := NewFeed(adminID, request)
	if err != nil {
		return GetListResponse{}, err
	}
	detail.Touch(r.Now())

	res, err := r.feeds().InsertOne(ctx, detail)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "creating feed item")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	return r.resolveOne(ctx, detail)
}

// ToggleLike removes the acting user's like when present and adds it
// otherwise. Each branch is a single conditional update.
func (r Repository) ToggleLike(ctx context.Context, id string) (GetListResponse, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return GetListResponse{}, err
	}

	res, err := r.feeds().UpdateOne(ctx,
		bson.M{"_id": oid, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$set":  bson.M{"updatedAt": r.Now()},
		},
	)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "unliking feed item")
	}

	if res.MatchedCount == 0 {
		res, err = r.feeds().UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{
				"$addToSet": bson.M{"likes": userID},
				"$set":      bson.M{"updatedAt": r.Now()},
			},
		)
		if err != nil {
			return GetListResponse{}, mongodb.Internal(err, "liking feed item")
		}
		if res.MatchedCount == 0 {
			return GetListResponse{}, mongodb.NotFound("Feed item not found")
		}
	}

	return r.get(ctx, oid)
}

func (r Repository) AddComment(ctx context.Context, id string, request CommentRequest) (GetListResponse, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	if strings.TrimSpace(request.Text) == "" {
		return GetListResponse{}, web.NewRequestError(errors.New("Comment text is required"), http.StatusBadRequest)
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return GetListResponse{}, err
	}

	comment := entity.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      request.Text,
		CreatedAt: r.Now(),
	}

	res, err := r.feeds().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": comment.CreatedAt},
		},
	)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "adding comment")
	}
	if res.MatchedCount == 0 {
		return GetListResponse{}, mongodb.NotFound("Feed item not found")
	}

	return r.get(ctx, oid)
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.feeds().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongodb.Internal(err, "deleting feed item")
	}
	if res.DeletedCount == 0 {
		return mongodb.NotFound("Feed item not found")
	}

	return nil
}

func (r Repository) get(ctx context.Context, oid primitive.ObjectID) (GetListResponse, error) {
	var detail entity.Feed
	err := r.feeds().FindOne(ctx, bson.M{"_id": oid}).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return GetListResponse{}, mongodb.NotFound("Feed item not found")
	}
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "selecting feed item")
	}

	return r.resolveOne(ctx, detail)
}

func (r Repository) resolveOne(ctx context.Context, detail entity.Feed) (GetListResponse, error) {
	list, err := r.resolve(ctx, []entity.Feed{detail})
	if err != nil {
		return GetListResponse{}, err
	}
	return list[0], nil
}

func (r Repository) resolve(ctx context.Context, list []entity.Feed) ([]GetListResponse, error) {
	var ids []primitive.ObjectID
	for _, f := range list {
		ids = append(ids, f.SenderID)
		if f.RecipientID != nil {
			ids = append(ids, *f.RecipientID)
		}
		ids = append(ids, f.Likes...)
		for _, c := range f.Comments {
			ids = append(ids, c.UserID)
		}
	}

	users, err := r.ResolveUsers(ctx, ids, "name", "role", "avatar")
	if err != nil {
		return nil, err
	}

	return Populate(list, users), nil
}

// Populate attaches the resolved users to each feed item. Senders and
// recipients carry name, role and avatar, likers only their name and
// comment authors their name and avatar.
func Populate(list []entity.Feed, users map[primitive.ObjectID]*entity.UserRef) []GetListResponse {
	response := make([]GetListResponse, 0, len(list))

	for _, f := range list {
		item := GetListResponse{
			Feed:     f,
			Sender:   users[f.SenderID].Pick("name", "role", "avatar"),
			Likes:    make([]*entity.UserRef, 0, len(f.Likes)),
			Comments: make([]CommentResponse, 0, len(f.Comments)),
		}
		if f.RecipientID != nil {
			item.Recipient = users[*f.RecipientID].Pick("name", "role", "avatar")
		}
		for _, id := range f.Likes {
			if u, ok := users[id]; ok {
				item.Likes = append(item.Likes, u.Pick("name"))
			}
		}
		for _, c := range f.Comments {
			item.Comments = append(item.Comments, CommentResponse{
				ID:        c.ID,
				User:      users[c.UserID].Pick("name", "avatar"),
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			})
		}
		response = append(response, item)
	}

	return response
}

// NewFeed builds a feed item from a create request.
func NewFeed(sender primitive.ObjectID, request CreateRequest) (entity.Feed, error) {
	detail := entity.Feed{
		SenderID: sender,
		Type:     request.Type,
		Content:  request.Content,
		Likes:    []primitive.ObjectID{},
		Comments: []entity.Comment{},
		Points:   request.Points,
		Badge:    request.Badge,
	}

	if detail.Type == "" {
		detail.Type = entity.FeedGeneral
	}
	if !validType(detail.Type) {
		return entity.Feed{}, web.NewRequestError(errors.Errorf("type must be one of %s", strings.Join(types, ", ")), http.StatusBadRequest)
	}

	if strings.TrimSpace(detail.Content.Body) == "" {
		return entity.Feed{}, &web.Error{
			Err:    errors.New("content.body is required"),
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "content.body", Error: "content.body is required"}},
		}
	}
	if detail.Content.Tags == nil {
		detail.Content.Tags = []string{}
	}

	if request.RecipientID != "" {
		recipient, err := mongodb.ParseID(request.RecipientID)
		if err != nil {
			return entity.Feed{}, err
		}
		detail.RecipientID = &recipient
	}

	return detail, nil
}

func validType(t string) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
