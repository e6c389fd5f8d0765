package models

import "time"

// Roles a user can hold. The set is closed; permission checks live in
// the permissions package.
const (
	RoleUser      = "user"
	RoleDoctor    = "doctor"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
	RoleBanned    = "banned"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:50;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex"`
	Role      string    `json:"role" gorm:"size:20;default:'user'"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCompact is the denormalized author summary embedded in comment and
// notification responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Verified: u.Verified,
	}
}

// CreateUserRequest defines the request body for registering a new user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
}
