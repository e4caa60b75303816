package model

import "time"

// RoleAdmin is the only role the site knows about.
const RoleAdmin = "admin"

// User is an administrative identity allowed to edit teams and members.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
