package models

import (
	"time"
)

// RoleType defines the dashboard user role
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleStaff RoleType = "staff"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a dashboard account based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Email        string     `json:"email" db:"email" example:"admin@talentquest.ph"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"fullName" db:"full_name" example:"Event Administrator"`
	Role         RoleType   `json:"role" db:"role" example:"admin"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}
