package recognition

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

const (
	leaderboardSize = 10
	recentSize      = 5
	userRecentSize  = 10
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) recognitions() *mongo.Collection {
	return r.Collection(mongodb.Recognitions)
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	list, err := mongodb.FindAll[entity.Recognition](ctx, r.recognitions(), bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mongodb.Internal(err, "selecting recognitions")
	}

	return r.resolve(ctx, list, true, true, "name", "email", "department", "designation")
}

// Create records a recognition given by the acting user. Giving one to
// yourself is allowed.
func (r Repository) Create(ctx context.Context, request CreateRequest) (GetListResponse, error) {
	giver, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	detail, err := NewRecognition(giver, request)
	if err != nil {
		return GetListResponse{}, err
	}
	detail.Touch(r.Now())

	res, err := r.recognitions().InsertOne(ctx, detail)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "creating recognition")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	list, err := r.resolve(ctx, []entity.Recognition{detail}, true, true, "name", "email", "department", "designation")
	if err != nil {
		return GetListResponse{}, err
	}

	return list[0], nil
}

// Stats returns the total count, the ten most recognized users and the five
// latest recognitions. Ties on the leaderboard are ordered by user id.
func (r Repository) Stats(ctx context.Context) (StatsResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return StatsResponse{}, err
	}

	total, err := r.recognitions().CountDocuments(ctx, bson.M{})
	if err != nil {
		return StatsResponse{}, mongodb.Internal(err, "counting recognitions")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$recipient"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: leaderboardSize}},
	}

	cur, err := r.recognitions().Aggregate(ctx, pipeline)
	if err != nil {
		return StatsResponse{}, mongodb.Internal(err, "aggregating leaderboard")
	}

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int                `bson:"count"`
	}
	if err = cur.All(ctx, &rows); err != nil {
		return StatsResponse{}, mongodb.Internal(err, "decoding leaderboard")
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	users, err := r.ResolveUsers(ctx, ids, "name", "department", "designation")
	if err != nil {
		return StatsResponse{}, err
	}

	leaderboard := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		user := users[row.ID]
		if user == nil {
			user = &entity.UserRef{ID: row.ID}
		}
		leaderboard = append(leaderboard, LeaderboardEntry{User: user, Count: row.Count})
	}

	opts := options.Find().SetSort(newestFirst).SetLimit(recentSize)
	recent, err := mongodb.FindAll[entity.Recognition](ctx, r.recognitions(), bson.M{}, opts)
	if err != nil {
		return StatsResponse{}, mongodb.Internal(err, "selecting recent recognitions")
	}

	resolved, err := r.resolve(ctx, recent, true, true, "name", "department")
	if err != nil {
		return StatsResponse{}, err
	}

	return StatsResponse{
		TotalCount:         total,
		Leaderboard:        leaderboard,
		RecentRecognitions: resolved,
	}, nil
}

func (r Repository) UserStats(ctx context.Context, userID string) (UserStatsResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return UserStatsResponse{}, err
	}

	oid, err := mongodb.ParseID(userID)
	if err != nil {
		return UserStatsResponse{}, err
	}

	received, err := r.recognitions().CountDocuments(ctx, bson.M{"recipient": oid})
	if err != nil {
		return UserStatsResponse{}, mongodb.Internal(err, "counting received recognitions")
	}

	given, err := r.recognitions().CountDocuments(ctx, bson.M{"giver": oid})
	if err != nil {
		return UserStatsResponse{}, mongodb.Internal(err, "counting given recognitions")
	}

	opts := options.Find().SetSort(newestFirst).SetLimit(userRecentSize)
	list, err := mongodb.FindAll[entity.Recognition](ctx, r.recognitions(), bson.M{"recipient": oid}, opts)
	if err != nil {
		return UserStatsResponse{}, mongodb.Internal(err, "selecting received recognitions")
	}

	resolved, err := r.resolve(ctx, list, false, true, "name", "department", "designation")
	if err != nil {
		return UserStatsResponse{}, err
	}

	return UserStatsResponse{
		Received:             received,
		Given:                given,
		ReceivedRecognitions: resolved,
	}, nil
}

func (r Repository) resolve(ctx context.Context, list []entity.Recognition, recipients, givers bool, fields ...string) ([]GetListResponse, error) {
	ids := make([]primitive.ObjectID, 0, 2*len(list))
	for _, rec := range list {
		if recipients {
			ids = append(ids, rec.Recipient)
		}
		if givers {
			ids = append(ids, rec.Giver)
		}
	}

	users, err := r.ResolveUsers(ctx, ids, fields...)
	if err != nil {
		return nil, err
	}

	response := make([]GetListResponse, 0, len(list))
	for _, rec := range list {
		item := GetListResponse{
			Recognition: rec,
			Recipient:   &entity.UserRef{ID: rec.Recipient},
			Giver:       &entity.UserRef{ID: rec.Giver},
		}
		if recipients {
			item.Recipient = users[rec.Recipient]
		}
		if givers {
			item.Giver = users[rec.Giver]
		}
		response = append(response, item)
	}

	return response, nil
}

// NewRecognition validates a create request and applies the badge color
// default.
func NewRecognition(giver primitive.ObjectID, request CreateRequest) (entity.Recognition, error) {
	if strings.TrimSpace(request.Recipient) == "" || strings.TrimSpace(request.Message) == "" || request.Badge == "" {
		return entity.Recognition{}, web.NewRequestError(errors.New("Recipient, message, and badge are required"), http.StatusBadRequest)
	}

	if !ValidBadge(request.Badge) {
		return entity.Recognition{}, web.NewRequestError(errors.Errorf("badge must be one of %s", strings.Join(entity.Badges, ", ")), http.StatusBadRequest)
	}

	recipient, err := mongodb.ParseID(request.Recipient)
	if err != nil {
		return entity.Recognition{}, err
	}

	color := request.BadgeColor
	if color == "" {
		color = entity.DefaultBadgeColor
	}

	return entity.Recognition{
		Recipient:  recipient,
		Giver:      giver,
		Message:    request.Message,
		Badge:      request.Badge,
		BadgeColor: color,
	}, nil
}

func ValidBadge(badge string) bool {
	for _, b := range entity.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
