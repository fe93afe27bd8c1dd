package leave

import (
	"context"
	"net/http"

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

var statuses = []string{entity.LeavePending, entity.LeaveApproved, entity.LeaveRejected}

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) leaves() *mongo.Collection {
	return r.Collection(mongodb.Leaves)
}

// Create files a pending leave for the acting user. Overlapping requests
// are not checked.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Leave, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return entity.Leave{}, err
	}

	if err = r.ValidateStruct(&request, "Type", "StartDate", "EndDate", "Reason"); err != nil {
		return entity.Leave{}, err
	}

	start, err := mongodb.ParseTime("startDate", request.StartDate)
	if err != nil {
		return entity.Leave{}, err
	}
	end, err := mongodb.ParseTime("endDate", request.EndDate)
	if err != nil {
		return entity.Leave{}, err
	}

	if end.Before(start) {
		return entity.Leave{}, web.NewRequestError(errors.New("endDate must not be before startDate"), http.StatusBadRequest)
	}

	detail := entity.Leave{
		EmployeeID: userID,
		Type:       request.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     request.Reason,
		Status:     entity.LeavePending,
	}
	detail.Touch(r.Now())

	res, err := r.leaves().InsertOne(ctx, detail)
	if err != nil {
		return entity.Leave{}, mongodb.Internal(err, "creating leave")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	return detail, nil
}

func (r Repository) GetMyLeaves(ctx context.Context) ([]entity.Leave, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	list, err := mongodb.FindAll[entity.Leave](ctx, r.leaves(), bson.M{"employeeId": userID}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting leaves")
	}

	return list, nil
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	leaves, err := mongodb.FindAll[entity.Leave](ctx, r.leaves(), bson.M{}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting leaves")
	}

	return r.resolve(ctx, leaves)
}

// UpdateStatus sets the status from any prior status and records the
// acting admin as approver.
func (r Repository) UpdateStatus(ctx context.Context, request UpdateStatusRequest) (GetListResponse, error) {
	adminID, err := r.ActingUserID(ctx, auth.RoleAdmin)
	if err != nil {
		return GetListResponse{}, err
	}

	if !ValidStatus(request.Status) {
		return GetListResponse{}, web.NewRequestError(errors.Errorf("status must be one of %v", statuses), http.StatusBadRequest)
	}

	oid, err := mongodb.ParseID(request.ID)
	if err != nil {
		return GetListResponse{}, err
	}

	var detail entity.Leave
	err = r.leaves().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":     request.Status,
			"approvedBy": adminID,
			"updatedAt":  r.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return GetListResponse{}, mongodb.NotFound("Leave request not found")
	}
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "updating leave status")
	}

	list, err := r.resolve(ctx, []entity.Leave{detail})
	if err != nil {
		return GetListResponse{}, err
	}

	return list[0], nil
}

func (r Repository) resolve(ctx context.Context, leaves []entity.Leave) ([]GetListResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(leaves))
	for _, l := range leaves {
		ids = append(ids, l.EmployeeID)
	}

	users, err := r.ResolveUsers(ctx, ids, "name", "email")
	if err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0, len(leaves))
	for _, l := range leaves {
		list = append(list, GetListResponse{Leave: l, Employee: users[l.EmployeeID]})
	}

	return list, nil
}

// ValidStatus reports whether status is one of the known leave states.
func ValidStatus(status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
