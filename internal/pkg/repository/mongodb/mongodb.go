// Package mongodb holds the shared document store handle used by every
// repository.
package mongodb

import (
	"context"
	"net/http"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Users        = "users"
	Attendance   = "attendances"
	Leaves       = "leaves"
	Events       = "events"
	Meetings     = "meetings"
	Messages     = "messages"
	Feeds        = "feeds"
	Recognitions = "recognitions"
)

// Config is the required properties to use the database.
type Config struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
}

// Database wraps the mongo database together with its client.
type Database struct {
	*mongo.Database
	client *mongo.Client
	now    func() time.Time
}

// New connects to the store and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Database, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging mongo")
	}

	return &Database{
		Database: client.Database(cfg.Name),
		client:   client,
		now:      time.Now,
	}, nil
}

// Ping reports whether the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Now returns the current UTC time as seen by the repositories.
func (d *Database) Now() time.Time {
	return d.now().UTC()
}

// SetClock replaces the clock used by Now.
func (d *Database) SetClock(now func() time.Time) {
	d.now = now
}

// CheckClaims returns the acting user's claims. When roles are given the
// user must hold one of them.
func (d *Database) CheckClaims(ctx context.Context, role ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, err
	}

	if len(role) > 0 && !claims.Authorized(role...) {
		return auth.Claims{}, web.NewRequestError(errors.New("Not authorized as an admin"), http.StatusForbidden)
	}

	return claims, nil
}

// ActingUserID returns the acting user's id parsed from the claims.
func (d *Database) ActingUserID(ctx context.Context, role ...string) (primitive.ObjectID, error) {
	claims, err := d.CheckClaims(ctx, role...)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID())
	if err != nil {
		return primitive.NilObjectID, web.NewRequestError(errors.New("invalid token subject"), http.StatusUnauthorized)
	}

	return id, nil
}

// ValidateStruct checks that the named fields of s are set.
func (d *Database) ValidateStruct(s any, fields ...string) error {
	if list := web.Required(s, fields...); len(list) > 0 {
		return &web.Error{
			Err:    errors.New(list[0].Error),
			Status: http.StatusBadRequest,
			Fields: list,
		}
	}
	return nil
}

// ParseID converts a hex id coming from a request into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, web.NewRequestError(errors.Errorf("invalid id %q", hex), http.StatusBadRequest)
	}
	return id, nil
}

// ResolveUsers loads the referenced users in one query and returns them by
// id. Only the named fields are projected. Dangling ids are left out.
func (d *Database) ResolveUsers(ctx context.Context, ids []primitive.ObjectID, fields ...string) (map[primitive.ObjectID]*entity.UserRef, error) {
	refs := make(map[primitive.ObjectID]*entity.UserRef)

	unique := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return refs, nil
	}

	projection := bson.M{}
	for _, f := range fields {
		projection[f] = 1
	}

	opts := options.Find()
	if len(projection) > 0 {
		opts.SetProjection(projection)
	}

	cur, err := d.Collection(Users).Find(ctx, bson.M{"_id": bson.M{"$in": unique}}, opts)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "resolving users"), http.StatusInternalServerError)
	}

	var list []entity.UserRef
	if err = cur.All(ctx, &list); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "decoding users"), http.StatusInternalServerError)
	}

	for i := range list {
		refs[list[i].ID] = &list[i]
	}

	return refs, nil
}

// FindAll runs a find and decodes every document into T.
func FindAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting %s", coll.Name())
	}

	list := make([]T, 0)
	if err = cur.All(ctx, &list); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", coll.Name())
	}

	return list, nil
}
