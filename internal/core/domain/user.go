package domain

import "time"

// GlobalRole is a user-level flag, independent of any project.
type GlobalRole string

const (
	RoleUser  GlobalRole = "USER"
	RoleAdmin GlobalRole = "ADMIN"
)

// Valid reports whether r is a known global role.
func (r GlobalRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an account in the system.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         GlobalRole `json:"role" bson:"role"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Actor is the authenticated caller of a single request.
type Actor struct {
	ID       string
	Username string
	Role     GlobalRole
}

// IsAdmin reports whether the actor carries the global ADMIN flag.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
