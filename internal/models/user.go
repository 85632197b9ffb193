package models

import "time"

// User role constants
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User is an API account. Mutating routes require the admin role.
type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName          string     `gorm:"not null" json:"full_name"`
	EncryptedPassword string     `gorm:"not null" json:"-"`
	Role              string     `gorm:"default:viewer;not null" json:"role"`
	SuspendedAt       *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsActive returns true when the account is not suspended.
func (u *User) IsActive() bool {
	return u.SuspendedAt == nil
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
