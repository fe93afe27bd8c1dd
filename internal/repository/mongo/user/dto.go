package user

import (
	"hrm/backend/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SignInRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type SignInResponse struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Role   string             `json:"role"`
	Avatar string             `json:"avatar"`
	Token  string             `json:"token"`
}

type RegisterRequest struct {
	Name        string   `json:"name"        form:"name"`
	Email       string   `json:"email"       form:"email"`
	Password    string   `json:"password"    form:"password"`
	Role        string   `json:"role"        form:"role"   binding:"omitempty,oneof=Admin Employee"`
	Department  string   `json:"department"  form:"department"`
	Designation string   `json:"designation" form:"designation"`
	Avatar      string   `json:"avatar"      form:"avatar"`
	JoiningDate string   `json:"joiningDate" form:"joiningDate"`
	Salary      *float64 `json:"salary"      form:"salary"`
	Status      string   `json:"status"      form:"status" binding:"omitempty,oneof=Active Inactive"`
}

// Profile is the full public projection returned after registration.
type Profile struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Department  string             `json:"department"`
	Designation string             `json:"designation"`
	Avatar      string             `json:"avatar"`
	JoiningDate string             `json:"joiningDate"`
	Salary      float64            `json:"salary"`
	Status      string             `json:"status"`
}

type GetProfileResponse struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Avatar      string             `json:"avatar"`
	Department  string             `json:"department"`
	Designation string             `json:"designation"`
	JoiningDate string             `json:"joiningDate"`
}

type AvatarResponse struct {
	Avatar  string `json:"avatar"`
	Message string `json:"message"`
}

// UpdateRequest carries a partial employee update. Nil or empty values
// leave the stored field unchanged.
type UpdateRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name"        form:"name"`
	Email       *string  `json:"email"       form:"email"`
	Role        *string  `json:"role"        form:"role"   binding:"omitempty,oneof=Admin Employee"`
	Department  *string  `json:"department"  form:"department"`
	Designation *string  `json:"designation" form:"designation"`
	Salary      *float64 `json:"salary"      form:"salary"`
	Status      *string  `json:"status"      form:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateResponse struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       string             `json:"role"`
	Department string             `json:"department"`
	Status     string             `json:"status"`
}

func toProfile(u entity.User) Profile {
	return Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Designation: u.Designation,
		Avatar:      u.Avatar,
		JoiningDate: u.JoiningDate,
		Salary:      u.Salary,
		Status:      u.Status,
	}
}
