package ports

import (
	"context"
	"time"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// CreateTaskInput carries everything needed to put a new card on a board.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Tags        string
	Deadline    *time.Time
	Status      domain.TaskStatus
	AssigneeID  string
}

// TaskUpdate is the payload of a transition. Status is mandatory; nil
// pointers leave the field untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Tags        *string
	Deadline    *time.Time
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool
	Status        domain.TaskStatus
	AssigneeID    *string
	Position      *int
}

// TaskBoardService defines the board use cases. The actor is always explicit.
type TaskBoardService interface {
	CreateTask(ctx context.Context, input CreateTaskInput, actor domain.Actor) (*domain.Task, error)
	TransitionTask(ctx context.Context, taskID string, update TaskUpdate, actor domain.Actor) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error
	// ListTasks lists a project board when projectID is non-empty, otherwise
	// the tasks assigned to the actor.
	ListTasks(ctx context.Context, projectID string, actor domain.Actor) ([]*domain.Task, error)
	GetTask(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error)
}

// ProjectService defines project and membership management.
type ProjectService interface {
	CreateProject(ctx context.Context, actor domain.Actor, title, description string, memberIDs []string) (*domain.Project, error)
	ListProjects(ctx context.Context, actor domain.Actor) ([]domain.ProjectWithRole, error)
	DeleteProject(ctx context.Context, actor domain.Actor, projectID string) error
	AddMember(ctx context.Context, actor domain.Actor, projectID, userID string) (*domain.Membership, error)
	RemoveMember(ctx context.Context, actor domain.Actor, projectID, userID string) error
	ListMembers(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Membership, error)
	GetProject(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectWithRole, error)
	UpdateProject(ctx context.Context, actor domain.Actor, projectID string, upd ProjectUpdate) (*domain.Project, error)
	// RoleInProject returns the actor's effective capability; NONE is
	// reported as domain.ErrForbidden.
	RoleInProject(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error)
}

// ProjectUpdate edits a project. Nil fields are left untouched; a non-nil
// MemberIDs replaces the member set (the caller always stays).
type ProjectUpdate struct {
	Title       *string
	Description *string
	MemberIDs   []string
}

// CommentService defines the project discussion thread.
type CommentService interface {
	AddComment(ctx context.Context, actor domain.Actor, projectID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor domain.Actor, projectID, commentID string) error
	ListComments(ctx context.Context, actor domain.Actor, projectID string) (*domain.CommentThread, error)
	TogglePin(ctx context.Context, actor domain.Actor, projectID, commentID string) (*domain.Comment, error)
}

// UserUpdate carries an admin's edit of another account. Nil or blank
// fields are left untouched.
type UserUpdate struct {
	Username *string
	Password *string
}

// UserService defines account listing and administration.
type UserService interface {
	// ListUsers returns every account except the actor's own.
	ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, upd UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, userID string) error
}
