package attendance

import (
	"context"
	"math"
	"net/http"
	"time"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/entity"
	"hrm/backend/internal/pkg/repository/mongodb"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dateLayout = "2006-01-02"

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) attendance() *mongo.Collection {
	return r.Collection(mongodb.Attendance)
}

// CheckIn creates today's record for the acting user. The unique
// (employeeId, date) index rejects a second check-in on the same day.
func (r Repository) CheckIn(ctx context.Context) (entity.Attendance, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return entity.Attendance{}, err
	}

	now := r.Now()

	detail := entity.Attendance{
		EmployeeID: userID,
		Date:       Today(now),
		CheckIn:    &now,
		Status:     entity.AttendancePresent,
	}
	detail.Touch(now)

	res, err := r.attendance().InsertOne(ctx, detail)
	if mongo.IsDuplicateKeyError(err) {
		return entity.Attendance{}, web.NewRequestError(errors.New("Already checked in today"), http.StatusConflict)
	}
	if err != nil {
		return entity.Attendance{}, mongodb.Internal(err, "creating attendance")
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	return detail, nil
}

// CheckOut stamps today's record. A second call overwrites the first.
func (r Repository) CheckOut(ctx context.Context) (entity.Attendance, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return entity.Attendance{}, err
	}

	now := r.Now()
	filter := bson.M{"employeeId": userID, "date": Today(now)}

	var detail entity.Attendance
	err = r.attendance().FindOne(ctx, filter).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return entity.Attendance{}, mongodb.NotFound("No check-in record found for today")
	}
	if err != nil {
		return entity.Attendance{}, mongodb.Internal(err, "selecting today's attendance")
	}

	checkIn := now
	if detail.CheckIn != nil {
		checkIn = *detail.CheckIn
	}

	detail.CheckOut = &now
	detail.TotalHours = TotalHours(checkIn, now)
	detail.Touch(now)

	_, err = r.attendance().UpdateOne(ctx,
		bson.M{"_id": detail.ID},
		bson.M{"$set": bson.M{
			"checkOut":   detail.CheckOut,
			"totalHours": detail.TotalHours,
			"updatedAt":  detail.UpdatedAt,
		}},
	)
	if err != nil {
		return entity.Attendance{}, mongodb.Internal(err, "updating attendance")
	}

	return detail, nil
}

func (r Repository) GetMyHistory(ctx context.Context) ([]entity.Attendance, error) {
	userID, err := r.ActingUserID(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	list, err := mongodb.FindAll[entity.Attendance](ctx, r.attendance(), bson.M{"employeeId": userID}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting attendance history")
	}

	return list, nil
}

// GetList returns every record, optionally for one day, with the employee
// name and email resolved.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Date != nil {
		d, err := date.ParseDate(*filter.Date)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		query["date"] = d.String()
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	records, err := mongodb.FindAll[entity.Attendance](ctx, r.attendance(), query, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting attendance")
	}

	users, err := r.ResolveUsers(ctx, employeeIDs(records), "name", "email")
	if err != nil {
		return nil, err
	}

	list := make([]GetListResponse, 0, len(records))
	for _, rec := range records {
		list = append(list, GetListResponse{Attendance: rec, Employee: users[rec.EmployeeID]})
	}

	return list, nil
}

// GetMonthReport returns the rows of the month containing the given day.
func (r Repository) GetMonthReport(ctx context.Context, month date.Date) ([]ReportRow, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	from, to := MonthRange(month.ToTime())

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	records, err := mongodb.FindAll[entity.Attendance](ctx, r.attendance(),
		bson.M{"date": bson.M{"$gte": from, "$lt": to}}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting monthly attendance")
	}

	users, err := r.ResolveUsers(ctx, employeeIDs(records), "name", "email")
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(records))
	for _, rec := range records {
		row := ReportRow{
			Date:       rec.Date,
			CheckIn:    rec.CheckIn,
			CheckOut:   rec.CheckOut,
			Status:     rec.Status,
			TotalHours: rec.TotalHours,
		}
		if u := users[rec.EmployeeID]; u != nil {
			row.Name = u.Name
			row.Email = u.Email
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Today is the UTC calendar day used to key attendance records.
func Today(now time.Time) string {
	return now.UTC().Format(dateLayout)
}

// TotalHours is the absolute distance between check-in and check-out in hours.
func TotalHours(checkIn, checkOut time.Time) float64 {
	return math.Abs(checkOut.Sub(checkIn).Hours())
}

// MonthRange returns the first day of t's month and the first day of the
// next month, both formatted as record dates.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(dateLayout), first.AddDate(0, 1, 0).Format(dateLayout)
}

func employeeIDs(records []entity.Attendance) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.EmployeeID)
	}
	return ids
}
