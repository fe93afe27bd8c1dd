package meeting

import (
	"context"
	"strings"

	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/pkg/repository/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) meetings() *mongo.Collection {
	return r.Collection(mongodb.Meetings)
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	list, err := mongodb.FindAll[entity.Meeting](ctx, r.meetings(), bson.M{}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting meetings")
	}

	return r.resolve(ctx, list)
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (GetListResponse, error) {
	adminID, err := r.ActingUserID(ctx, auth.RoleAdmin)
	if err != nil {
		return GetListResponse{}, err
	}

	if err = r.ValidateStruct(&request, "Title", "Date", "StartTime", "EndTime"); err != nil {
		return GetListResponse{}, err
	}

	day, err := mongodb.ParseTime("date", request.Date)
	if err != nil {
		return GetListResponse{}, err
	}

	detail := entity.Meeting{
		Title:     strings.TrimSpace(request.Title),
		Date:      day,
		StartTime: request.StartTime,
		EndTime:   request.EndTime,
		Color:     request.Color,
		CreatedBy: adminID,
	}
	if detail.Color == "" {
		detail.Color = entity.DefaultMeetingColor
	}
	detail.Touch(r.Now())

	res, err := r.meetings().InsertOne(ctx, detail)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "creating meeting")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	list, err := r.resolve(ctx, []entity.Meeting{detail})
	if err != nil {
		return GetListResponse{}, err
	}

	return list[0], nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.meetings().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongodb.Internal(err, "deleting meeting")
	}
	if res.DeletedCount == 0 {
		return mongodb.NotFound("Meeting not found")
	}

	return nil
}

func (r Repository) resolve(ctx context.Context, meetings []entity.Meeting) ([]GetListResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.CreatedBy)
	}

	users, err := r.ResolveUsers(ctx, ids, "name", "email")
	if err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0, len(meetings))
	for _, m := range meetings {
		list = append(list, GetListResponse{Meeting: m, CreatedBy: users[m.CreatedBy]})
	}

	return list, nil
}
