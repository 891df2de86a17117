package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the available roles for admin accounts.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleSecurity UserRole = "security"
)

// User represents an administrative account stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LoginRequest is the credential payload for admin login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and basic account info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Username    string    `json:"username"`
	Role        UserRole  `json:"role"`
}

// ChangePasswordRequest carries a password rotation payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// JWTClaims are the access-token claims.
type JWTClaims struct {
	UserID   string   `json:"uid"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
