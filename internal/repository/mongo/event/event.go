package event

import (
	"context"
	"net/http"
	"strings"
	"time"

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

var (
	categories = []string{
		entity.CategoryConference,
		entity.CategoryWorkshop,
		entity.CategoryExpo,
		entity.CategoryForum,
		entity.CategorySymposium,
	}
	statuses = []string{
		entity.EventUpcoming,
		entity.EventOngoing,
		entity.EventPast,
		entity.EventCancelled,
	}

	ErrFull              = errors.New("Event is at full capacity")
	ErrAlreadyRegistered = errors.New("Already registered for this event")
	ErrNotRegistered     = errors.New("Not registered for this event")

	ErrCapacityBelowAttendees = errors.New("capacity must not be below the number of attendees")
)

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) events() *mongo.Collection {
	return r.Collection(mongodb.Events)
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	return r.list(ctx, bson.M{}, 1)
}

// GetUpcoming returns upcoming events that have not started yet.
func (r Repository) GetUpcoming(ctx context.Context) ([]GetListResponse, error) {
	return r.list(ctx, bson.M{
		"startDate": bson.M{"$gte": r.Now()},
		"status":    entity.EventUpcoming,
	}, 1)
}

// GetPast returns events that already ended, latest start first.
func (r Repository) GetPast(ctx context.Context) ([]GetListResponse, error) {
	return r.list(ctx, bson.M{"endDate": bson.M{"$lt": r.Now()}}, -1)
}

func (r Repository) list(ctx context.Context, filter bson.M, order int) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: order}})

	events, err := mongodb.FindAll[entity.Event](ctx, r.events(), filter, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting events")
	}

	return r.resolve(ctx, events)
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (GetListResponse, error) {
	adminID, err := r.ActingUserID(ctx, auth.RoleAdmin)
	if err != nil {
		return GetListResponse{}, err
	}

	detail, err := NewEvent(adminID, request)
	if err != nil {
		return GetListResponse{}, err
	}

	if err = Validate(detail); err != nil {
		return GetListResponse{}, err
	}

	detail.Touch(r.Now())

	res, err := r.events().InsertOne(ctx, detail)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "creating event")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	return r.resolveOne(ctx, detail)
}

// Update merges the request over the stored event and re-runs validation.
func (r Repository) Update(ctx context.Context, request UpdateRequest) (GetListResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return GetListResponse{}, err
	}

	detail, err := r.get(ctx, request.ID)
	if err != nil {
		return GetListResponse{}, err
	}

	if err = Merge(&detail, request); err != nil {
		return GetListResponse{}, err
	}
	if err = Validate(detail); err != nil {
		return GetListResponse{}, err
	}
	detail.Touch(r.Now())

	// Attendees are left to Register and Unregister. The capacity guard
	// covers registrations that land after the read above.
	filter := bson.M{
		"_id": detail.ID,
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$attendees", bson.A{}}}},
			detail.Capacity,
		}},
	}

	res, err := r.events().UpdateOne(ctx, filter, bson.M{"$set": updateFields(detail)})
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "updating event")
	}

	stored, err := r.get(ctx, request.ID)
	if err != nil {
		return GetListResponse{}, err
	}
	if res.MatchedCount == 0 {
		return GetListResponse{}, &web.Error{
			Err:    ErrCapacityBelowAttendees,
			Status: http.StatusBadRequest,
			Fields: []web.FieldError{{Field: "capacity", Error: ErrCapacityBelowAttendees.Error()}},
		}
	}

	return r.resolveOne(ctx, stored)
}

// updateFields lists what an admin update may change.
func updateFields(e entity.Event) bson.M {
	return bson.M{
		"title":                e.Title,
		"description":          e.Description,
		"category":             e.Category,
		"startDate":            e.StartDate,
		"endDate":              e.EndDate,
		"location":             e.Location,
		"imageUrl":             e.ImageURL,
		"capacity":             e.Capacity,
		"registrationDeadline": e.RegistrationDeadline,
		"status":               e.Status,
		"updatedAt":            e.UpdatedAt,
	}
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.events().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongodb.Internal(err, "deleting event")
	}
	if res.DeletedCount == 0 {
		return mongodb.NotFound("Event not found")
	}

	return nil
}

// Register adds the acting user to the attendees. The capacity and
// duplicate checks are part of the update filter, so concurrent calls
// cannot overshoot the capacity.
func (r Repository) Register(ctx context.Context, id string) (GetListResponse, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return GetListResponse{}, err
	}

	filter := bson.M{
		"_id":       oid,
		"attendees": bson.M{"$ne": userID},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$attendees", bson.A{}}}},
			"$capacity",
		}},
	}
	update := bson.M{
		"$push": bson.M{"attendees": userID},
		"$set":  bson.M{"updatedAt": r.Now()},
	}

	res, err := r.events().UpdateOne(ctx, filter, update)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "registering for event")
	}

	detail, err := r.get(ctx, id)
	if err != nil {
		return GetListResponse{}, err
	}

	if res.ModifiedCount == 0 {
		if err = CheckRegister(detail, userID); err != nil {
			return GetListResponse{}, web.NewRequestError(err, http.StatusBadRequest)
		}
		return GetListResponse{}, web.NewRequestError(errors.New("Event registration changed, try again"), http.StatusConflict)
	}

	return r.resolveOne(ctx, detail)
}

func (r Repository) Unregister(ctx context.Context, id string) (GetListResponse, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return GetListResponse{}, err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return GetListResponse{}, err
	}

	res, err := r.events().UpdateOne(ctx,
		bson.M{"_id": oid, "attendees": userID},
		bson.M{
			"$pull": bson.M{"attendees": userID},
			"$set":  bson.M{"updatedAt": r.Now()},
		},
	)
	if err != nil {
		return GetListResponse{}, mongodb.Internal(err, "unregistering from event")
	}

	detail, err := r.get(ctx, id)
	if err != nil {
		return GetListResponse{}, err
	}

	if res.ModifiedCount == 0 {
		return GetListResponse{}, web.NewRequestError(ErrNotRegistered, http.StatusBadRequest)
	}

	return r.resolveOne(ctx, detail)
}

func (r Repository) get(ctx context.Context, id string) (entity.Event, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return entity.Event{}, err
	}

	var detail entity.Event
	err = r.events().FindOne(ctx, bson.M{"_id": oid}).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return entity.Event{}, mongodb.NotFound("Event not found")
	}
	if err != nil {
		return entity.Event{}, mongodb.Internal(err, "selecting event")
	}

	return detail, nil
}

func (r Repository) resolveOne(ctx context.Context, detail entity.Event) (GetListResponse, error) {
	list, err := r.resolve(ctx, []entity.Event{detail})
	if err != nil {
		return GetListResponse{}, err
	}
	return list[0], nil
}

func (r Repository) resolve(ctx context.Context, events []entity.Event) ([]GetListResponse, error) {
	var ids []primitive.ObjectID
	for _, e := range events {
		ids = append(ids, e.CreatedBy)
		ids = append(ids, e.Attendees...)
	}

	users, err := r.ResolveUsers(ctx, ids, "name", "email")
	if err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0, len(events))
	for _, e := range events {
		item := GetListResponse{
			Event:     e,
			Attendees: make([]*entity.UserRef, 0, len(e.Attendees)),
			CreatedBy: users[e.CreatedBy].Pick("name"),
		}
		for _, a := range e.Attendees {
			if u, ok := users[a]; ok {
				item.Attendees = append(item.Attendees, u)
			}
		}
		list = append(list, item)
	}

	return list, nil
}

// CheckRegister explains why userID cannot join e. Capacity is checked
// before duplicates.
func CheckRegister(e entity.Event, userID primitive.ObjectID) error {
	if len(e.Attendees) >= e.Capacity {
		return ErrFull
	}
	if Contains(e.Attendees, userID) {
		return ErrAlreadyRegistered
	}
	return nil
}

func Contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// NewEvent builds an upcoming event created by admin. Blank dates are left
// zero for Validate to report.
func NewEvent(admin primitive.ObjectID, request CreateRequest) (entity.Event, error) {
	detail := entity.Event{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Location:    request.Location,
		ImageURL:    request.ImageURL,
		Capacity:    entity.DefaultEventCapacity,
		Attendees:   []primitive.ObjectID{},
		Status:      entity.EventUpcoming,
		CreatedBy:   admin,
	}
	if request.Capacity != nil {
		detail.Capacity = *request.Capacity
	}

	dates := []struct {
		field string
		value string
		dst   *time.Time
	}{
		{"startDate", request.StartDate, &detail.StartDate},
		{"endDate", request.EndDate, &detail.EndDate},
		{"registrationDeadline", request.RegistrationDeadline, &detail.RegistrationDeadline},
	}
	for _, d := range dates {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		t, err := mongodb.ParseTime(d.field, d.value)
		if err != nil {
			return entity.Event{}, err
		}
		*d.dst = t
	}

	return detail, nil
}

// Merge applies the non-nil request fields to e.
func Merge(e *entity.Event, request UpdateRequest) error {
	if request.Title != nil {
		e.Title = *request.Title
	}
	if request.Description != nil {
		e.Description = *request.Description
	}
	if request.Category != nil {
		e.Category = *request.Category
	}
	if request.Location != nil {
		e.Location = *request.Location
	}
	if request.ImageURL != nil {
		e.ImageURL = *request.ImageURL
	}
	if request.Capacity != nil {
		e.Capacity = *request.Capacity
	}
	if request.Status != nil {
		e.Status = *request.Status
	}

	dates := []struct {
		field string
		value *string
		dst   *time.Time
	}{
		{"startDate", request.StartDate, &e.StartDate},
		{"endDate", request.EndDate, &e.EndDate},
		{"registrationDeadline", request.RegistrationDeadline, &e.RegistrationDeadline},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		t, err := mongodb.ParseTime(d.field, *d.value)
		if err != nil {
			return err
		}
		*d.dst = t
	}

	return nil
}

// Validate checks the required fields and enumerations of an event.
func Validate(e entity.Event) error {
	var fields []web.FieldError

	required := map[string]bool{
		"title":                strings.TrimSpace(e.Title) != "",
		"description":          strings.TrimSpace(e.Description) != "",
		"location":             strings.TrimSpace(e.Location) != "",
		"startDate":            !e.StartDate.IsZero(),
		"endDate":              !e.EndDate.IsZero(),
		"registrationDeadline": !e.RegistrationDeadline.IsZero(),
	}
	for _, name := range []string{"title", "description", "location", "startDate", "endDate", "registrationDeadline"} {
		if !required[name] {
			fields = append(fields, web.FieldError{Field: name, Error: name + " is required"})
		}
	}

	if !oneOf(e.Category, categories) {
		fields = append(fields, web.FieldError{Field: "category", Error: "category must be one of " + strings.Join(categories, ", ")})
	}
	if !oneOf(e.Status, statuses) {
		fields = append(fields, web.FieldError{Field: "status", Error: "status must be one of " + strings.Join(statuses, ", ")})
	}
	switch {
	case e.Capacity < 1:
		fields = append(fields, web.FieldError{Field: "capacity", Error: "capacity must be at least 1"})
	case e.Capacity < len(e.Attendees):
		fields = append(fields, web.FieldError{Field: "capacity", Error: ErrCapacityBelowAttendees.Error()})
	}
	if !e.StartDate.IsZero() && !e.EndDate.IsZero() && e.EndDate.Before(e.StartDate) {
		fields = append(fields, web.FieldError{Field: "endDate", Error: "endDate must not be before startDate"})
	}

	if len(fields) == 0 {
		return nil
	}

	return &web.Error{
		Err:    errors.New(fields[0].Error),
		Status: http.StatusBadRequest,
		Fields: fields,
	}
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
