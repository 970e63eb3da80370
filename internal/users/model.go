package users

import "time"

// Role controls what a staff account may do once an authorization layer is
// wired in front of the API. The data model is enforced here; route-level
// gating is not.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleStaff         Role = "Staff"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
