package models

import "strings"

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// AdminUserID is the fixed ID of the single administrator identity.
const AdminUserID = "admin"

type User struct {
	ID   string `json:"id"`
	Role string `json:"role"`

	// Name is the pseudonym for students, the username for the admin.
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// StudentID derives the deterministic user ID for a student email.
func StudentID(email string) string {
	return "stu_" + strings.ToLower(email)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
