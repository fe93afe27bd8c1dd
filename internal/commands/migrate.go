package commands

import (
	"context"
	"log/slog"

	"hrm/backend/internal/pkg/repository/mongodb"
	"hrm/backend/internal/repository/mongo/user"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Collection  string
	Model       mongo.IndexModel
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Unique index: users.email",
		Collection:  mongodb.Users,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("users_email_unique").SetUnique(true),
		},
	},
	{
		Index:       2,
		Description: "Unique index: attendances (employeeId, date)",
		Collection:  mongodb.Attendance,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("attendances_employee_date_unique").SetUnique(true),
		},
	},
	{
		Index:       3,
		Description: "Index: messages (sender, receiver, createdAt)",
		Collection:  mongodb.Messages,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("messages_parties_created"),
		},
	},
	{
		Index:       4,
		Description: "Index: recognitions.recipient",
		Collection:  mongodb.Recognitions,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "recipient", Value: 1}},
			Options: options.Index().SetName("recognitions_recipient"),
		},
	},
	{
		Index:       5,
		Description: "Index: leaves.employeeId",
		Collection:  mongodb.Leaves,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index().SetName("leaves_employee_start"),
		},
	},
}

// Schemes returns the index definitions in the order Migrate applies them.
func Schemes() []Scheme {
	return scheme
}

// Migrate creates every index of the scheme. Creating an existing index is
// a no-op, so it can run on each deploy.
func Migrate(ctx context.Context, db *mongodb.Database, log *slog.Logger) error {
	for _, s := range scheme {
		name, err := db.Collection(s.Collection).Indexes().CreateOne(ctx, s.Model)
		if err != nil {
			return errors.Wrapf(err, "migrate %d: %s", s.Index, s.Description)
		}
		log.Info("migrate", "index", s.Index, "name", name, "description", s.Description)
	}

	return nil
}

// SeedAdmin creates the first admin account when no user holds the email.
func SeedAdmin(ctx context.Context, db *mongodb.Database, log *slog.Logger, name, email, password string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required (HRM_ADMIN_EMAIL, HRM_ADMIN_PASSWORD)")
	}

	created, err := user.NewRepository(db).EnsureAdmin(ctx, name, email, password)
	if err != nil {
		return errors.Wrap(err, "seeding admin")
	}

	if created {
		log.Info("admin created", "email", email)
	} else {
		log.Info("admin already exists", "email", email)
	}

	return nil
}
