package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BasicEntity holds the fields every stored document carries.
type BasicEntity struct {
	ID        primitive.ObjectID `json:"id"        bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Touch stamps the document as created or updated at now.
func (b *BasicEntity) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// UserRef is a user resolved into another document at read time. Only the
// fields requested by the resolving query are filled.
type UserRef struct {
	ID          primitive.ObjectID `json:"id"                    bson:"_id"`
	Name        string             `json:"name,omitempty"        bson:"name,omitempty"`
	Email       string             `json:"email,omitempty"       bson:"email,omitempty"`
	Role        string             `json:"role,omitempty"        bson:"role,omitempty"`
	Avatar      string             `json:"avatar,omitempty"      bson:"avatar,omitempty"`
	Department  string             `json:"department,omitempty"  bson:"department,omitempty"`
	Designation string             `json:"designation,omitempty" bson:"designation,omitempty"`
}

// Pick returns a copy of the reference keeping only the named fields.
func (u *UserRef) Pick(fields ...string) *UserRef {
	if u == nil {
		return nil
	}

	out := &UserRef{ID: u.ID}
	for _, f := range fields {
		switch f {
		case "name":
			out.Name = u.Name
		case "email":
			out.Email = u.Email
		case "role":
			out.Role = u.Role
		case "avatar":
			out.Avatar = u.Avatar
		case "department":
			out.Department = u.Department
		case "designation":
			out.Designation = u.Designation
		}
	}
	return out
}
