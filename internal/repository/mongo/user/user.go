package user

import (
	"context"
	"net/http"
	"net/url"
	"strings"

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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

type Repository struct {
	*mongodb.Database
}

func NewRepository(database *mongodb.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) users() *mongo.Collection {
	return r.Collection(mongodb.Users)
}

// GetActing loads the user a token was issued for.
func (r Repository) GetActing(ctx context.Context, id string) (entity.User, error) {
	oid, err := mongodb.ParseID(id)
	if err != nil {
		return entity.User{}, err
	}

	var detail entity.User
	err = r.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return entity.User{}, mongodb.NotFound("User not found")
	}
	if err != nil {
		return entity.User{}, mongodb.Internal(err, "selecting acting user")
	}

	return detail, nil
}

// GetByEmail is used by sign in. A missing user is reported with the same
// message as a wrong password.
func (r Repository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var detail entity.User

	err := r.users().FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return entity.User{}, &web.Error{
			Err:    errors.New("Invalid email or password"),
			Status: http.StatusUnauthorized,
		}
	}
	if err != nil {
		return entity.User{}, mongodb.Internal(err, "selecting user by email")
	}

	return detail, nil
}

func (r Repository) Register(ctx context.Context, request RegisterRequest) (Profile, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return Profile{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Email", "Password"); err != nil {
		return Profile{}, err
	}

	detail, err := NewUser(request, r.Now().Format(dateLayout))
	if err != nil {
		return Profile{}, err
	}

	count, err := r.users().CountDocuments(ctx, bson.M{"email": detail.Email})
	if err != nil {
		return Profile{}, mongodb.Internal(err, "checking email")
	}
	if count > 0 {
		return Profile{}, web.NewRequestError(errors.New("User already exists"), http.StatusConflict)
	}

	if err = r.insert(ctx, &detail, request.Password); err != nil {
		return Profile{}, err
	}

	return toProfile(detail), nil
}

// EnsureAdmin creates an admin account unless the email is already taken.
func (r Repository) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	detail, err := NewUser(RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     auth.RoleAdmin,
	}, r.Now().Format(dateLayout))
	if err != nil {
		return false, err
	}

	count, err := r.users().CountDocuments(ctx, bson.M{"email": detail.Email})
	if err != nil {
		return false, mongodb.Internal(err, "checking admin email")
	}
	if count > 0 {
		return false, nil
	}

	if err = r.insert(ctx, &detail, password); err != nil {
		return false, err
	}

	return true, nil
}

func (r Repository) insert(ctx context.Context, detail *entity.User, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return mongodb.Internal(err, "hashing password")
	}
	detail.Password = hash
	detail.Touch(r.Now())

	res, err := r.users().InsertOne(ctx, detail)
	if mongo.IsDuplicateKeyError(err) {
		return web.NewRequestError(errors.New("User already exists"), http.StatusConflict)
	}
	if err != nil {
		return mongodb.Internal(err, "creating user")
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		detail.ID = id
	}

	return nil
}

func (r Repository) GetProfile(ctx context.Context) (GetProfileResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetProfileResponse{}, err
	}

	detail, err := r.GetActing(ctx, claims.UserID())
	if err != nil {
		return GetProfileResponse{}, err
	}

	return GetProfileResponse{
		ID:          detail.ID,
		Name:        detail.Name,
		Email:       detail.Email,
		Role:        detail.Role,
		Avatar:      detail.Avatar,
		Department:  detail.Department,
		Designation: detail.Designation,
		JoiningDate: detail.JoiningDate,
	}, nil
}

func (r Repository) UpdateAvatar(ctx context.Context, avatar string) error {
	id, err := r.ActingUserID(ctx)
	if err != nil {
		return err
	}

	res, err := r.users().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"avatar": avatar, "updatedAt": r.Now()}},
	)
	if err != nil {
		return mongodb.Internal(err, "updating avatar")
	}
	if res.MatchedCount == 0 {
		return mongodb.NotFound("User not found")
	}

	return nil
}

// GetList returns every user that is not an admin.
func (r Repository) GetList(ctx context.Context) ([]entity.User, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	list, err := mongodb.FindAll[entity.User](ctx, r.users(), bson.M{"role": bson.M{"$ne": auth.RoleAdmin}}, opts)
	if err != nil {
		return nil, mongodb.Internal(err, "selecting employees")
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (entity.User, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.User{}, err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return entity.User{}, err
	}

	var detail entity.User
	err = r.users().FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return entity.User{}, mongodb.NotFound("Employee not found")
	}
	if err != nil {
		return entity.User{}, mongodb.Internal(err, "selecting employee")
	}

	return detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (UpdateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return UpdateResponse{}, err
	}

	oid, err := mongodb.ParseID(request.ID)
	if err != nil {
		return UpdateResponse{}, err
	}

	set := UpdateSet(request)
	set["updatedAt"] = r.Now()

	var detail entity.User
	err = r.users().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&detail)
	if mongodb.IsNoDocuments(err) {
		return UpdateResponse{}, mongodb.NotFound("Employee not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		return UpdateResponse{}, web.NewRequestError(errors.New("User already exists"), http.StatusConflict)
	}
	if err != nil {
		return UpdateResponse{}, mongodb.Internal(err, "updating employee")
	}

	return UpdateResponse{
		ID:         detail.ID,
		Name:       detail.Name,
		Email:      detail.Email,
		Role:       detail.Role,
		Department: detail.Department,
		Status:     detail.Status,
	}, nil
}

func (r Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	oid, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongodb.Internal(err, "deleting employee")
	}
	if res.DeletedCount == 0 {
		return mongodb.NotFound("Employee not found")
	}

	return nil
}

// NewUser builds the document for a registration request, applying the
// defaults for role, avatar, joining date and status.
func NewUser(request RegisterRequest, today string) (entity.User, error) {
	detail := entity.User{
		Name:        NormalizeName(request.Name),
		Email:       NormalizeEmail(request.Email),
		Role:        request.Role,
		Department:  request.Department,
		Designation: request.Designation,
		Avatar:      request.Avatar,
		JoiningDate: request.JoiningDate,
		Status:      request.Status,
	}

	if detail.Role == "" {
		detail.Role = auth.RoleEmployee
	}
	if detail.Avatar == "" {
		detail.Avatar = DefaultAvatar(detail.Name)
	}
	if detail.Status == "" {
		detail.Status = entity.UserStatusActive
	}
	if request.Salary != nil {
		detail.Salary = *request.Salary
	}

	if detail.JoiningDate == "" {
		detail.JoiningDate = today
	} else {
		d, err := date.ParseDate(detail.JoiningDate)
		if err != nil {
			return entity.User{}, web.NewRequestError(errors.New("joiningDate must be formatted as YYYY-MM-DD"), http.StatusBadRequest)
		}
		detail.JoiningDate = d.String()
	}

	return detail, nil
}

// UpdateSet turns a partial update into the $set document. Nil and blank
// values are skipped.
func UpdateSet(request UpdateRequest) bson.M {
	set := bson.M{}

	str := func(key string, v *string, fn func(string) string) {
		if v == nil || strings.TrimSpace(*v) == "" {
			return
		}
		set[key] = fn(*v)
	}
	same := func(s string) string { return s }

	str("name", request.Name, NormalizeName)
	str("email", request.Email, NormalizeEmail)
	str("role", request.Role, same)
	str("department", request.Department, same)
	str("designation", request.Designation, same)
	str("status", request.Status, same)

	if request.Salary != nil && *request.Salary != 0 {
		set["salary"] = *request.Salary
	}

	return set
}

func DefaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a candidate password.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
