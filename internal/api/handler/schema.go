package handler

import (
	"time"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
}

// updateUserRequest is the payload of PUT /v1/admin/users/:id. Blank
// fields are left unchanged.
type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- Projects ---

type createProjectRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

// updateProjectRequest is the payload of PUT /v1/projects/:id. A present
// member_ids list replaces the member set; the caller always stays.
type updateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type memberResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type roleResponse struct {
	Role string `json:"role"`
}

// --- Comments ---

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type commentResponse struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	Pinned         bool      `json:"pinned"`
	CreatedAt      time.Time `json:"created_at"`
}

type commentThreadResponse struct {
	Pinned   []commentResponse `json:"pinned"`
	Unpinned []commentResponse `json:"unpinned"`
}

// --- Tasks ---

// Deadlines accept RFC 3339, a zone-less local date-time, or a bare date.
type createTaskRequest struct {
	ProjectID   string  `json:"project_id"  validate:"required"`
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Tags        string  `json:"tags"`
	Deadline    *string `json:"deadline"`
	Status      string  `json:"status"      validate:"required,oneof=TO_DO IN_PROGRESS DONE"`
	AssigneeID  string  `json:"assignee_id" validate:"required"`
}

// updateTaskRequest is the payload of PUT /v1/tasks/:id. Absent fields are
// left unchanged; status is always required.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
	Deadline    *string `json:"deadline"`
	Status      string  `json:"status"      validate:"required,oneof=TO_DO IN_PROGRESS DONE"`
	AssigneeID  *string `json:"assignee_id"`
	Position    *int    `json:"position"    validate:"omitempty,min=0"`
}

type taskResponse struct {
	ID                  string     `json:"id"`
	ProjectID           string     `json:"project_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Status              string     `json:"status"`
	Tags                string     `json:"tags"`
	Deadline            *time.Time `json:"deadline"`
	AssigneeID          string     `json:"assignee_id"`
	AssigneeDisplayName string     `json:"assignee_display_name"`
	Position            int        `json:"position"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
