package entity

const (
	UserStatusActive   = "Active"
	UserStatusInactive = "Inactive"
)

type User struct {
	BasicEntity `bson:",inline"`

	Name        string  `json:"name"        bson:"name"`
	Email       string  `json:"email"       bson:"email"`
	Password    string  `json:"-"           bson:"password"`
	Role        string  `json:"role"        bson:"role"`
	Department  string  `json:"department"  bson:"department"`
	Designation string  `json:"designation" bson:"designation"`
	Avatar      string  `json:"avatar"      bson:"avatar"`
	JoiningDate string  `json:"joiningDate" bson:"joiningDate"`
	Salary      float64 `json:"salary"      bson:"salary"`
	Status      string  `json:"status"      bson:"status"`
}
