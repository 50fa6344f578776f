package domain

import "time"

// ProjectRole is the role a user holds inside one project.
type ProjectRole string

const (
	ProjectRoleMember  ProjectRole = "MEMBER"
	ProjectRoleManager ProjectRole = "MANAGER"
)

// Project groups memberships and tasks.
type Project struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Membership binds a user to a project with a role. At most one exists per
// (UserID, ProjectID) pair.
type Membership struct {
	UserID    string      `json:"user_id" bson:"user_id"`
	ProjectID string      `json:"project_id" bson:"project_id"`
	Username  string      `json:"username,omitempty" bson:"username,omitempty"`
	Role      ProjectRole `json:"role" bson:"role"`
	JoinedAt  time.Time   `json:"joined_at" bson:"joined_at"`
}

// ProjectWithRole is a project as seen by one of its members.
type ProjectWithRole struct {
	Project
	Role ProjectRole `json:"role"`
}
