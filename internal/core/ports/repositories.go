package ports

import (
	"context"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns every account ordered by username.
	List(ctx context.Context) ([]*domain.User, error)
	// Update rewrites username, email, password hash, role and updated_at.
	// A username taken by another account yields domain.ErrUserExists.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository persists project records.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error)
	// Update rewrites title and description.
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// MembershipDirectory stores the per-(user, project) role. Implementations
// must reject a second membership for the same pair with
// domain.ErrMembershipExists.
type MembershipDirectory interface {
	// MembershipOf returns the user's role in the project; ok is false when
	// the user is not a member.
	MembershipOf(ctx context.Context, userID, projectID string) (role domain.ProjectRole, ok bool, err error)
	ExistsMember(ctx context.Context, userID, projectID string) (bool, error)
	Add(ctx context.Context, m *domain.Membership) error
	Remove(ctx context.Context, userID, projectID string) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	DeleteByProject(ctx context.Context, projectID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// CommentRepository persists project comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByProject returns the project's comments newest first, ties
	// broken by id descending.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Comment, error)
	SetPinned(ctx context.Context, id string, pinned bool) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

// TaskRepository persists tasks and answers the bucket queries the board
// engine relies on. A bucket is the set of tasks sharing (projectID, status).
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByProject returns every task of the project ordered by
	// (status, position, id).
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	// ListBucket returns one bucket ordered by (position, id).
	ListBucket(ctx context.Context, projectID string, status domain.TaskStatus) ([]*domain.Task, error)
	CountByStatus(ctx context.Context, projectID string, status domain.TaskStatus) (int64, error)
	// MaxPosition returns the highest position in the bucket, or 0 when the
	// bucket is empty.
	MaxPosition(ctx context.Context, projectID string, status domain.TaskStatus) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdatePosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}
