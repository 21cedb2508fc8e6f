package models

import "time"

// RoleAdmin is the role given to users created by the seed command
const RoleAdmin = "admin"

// User represents an administrator account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CurrentUser is the identity exposed to templates for the signed-in user
type CurrentUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest represents the login form submission
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
