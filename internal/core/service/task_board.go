package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sgsm/taskboard/internal/api/metrics"
	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// TaskBoard is the board state machine. Every mutation runs under the
// project's lock and performs all checks before its first write, so a
// rejected call leaves stored state unchanged.
type TaskBoard struct {
	tasks    ports.TaskRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
	members  ports.MembershipDirectory
	authz    *Authorizer
	locker   ports.ProjectLocker
	log      zerolog.Logger

	newID func() string
	now   func() time.Time
}

// NewTaskBoard wires the board engine.
func NewTaskBoard(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	members ports.MembershipDirectory,
	locker ports.ProjectLocker,
	log zerolog.Logger,
) *TaskBoard {
	return &TaskBoard{
		tasks:    tasks,
		users:    users,
		projects: projects,
		members:  members,
		authz:    NewAuthorizer(members),
		locker:   locker,
		log:      log,
		newID:    newID,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// newID returns a UUIDv7 string; v7 ids sort in creation order, which the
// bucket tie-break relies on.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// unlock releases a project lock. A release error means the critical
// section may have overlapped another holder; the writes are already
// committed, so it is logged rather than returned.
func unlock(log zerolog.Logger, projectID string, release func() error) {
	if err := release(); err != nil {
		log.Error().Err(err).Str("project_id", projectID).Msg("project lock released with error")
	}
}

// CreateTask appends a new task to the tail of its (project, status) bucket.
func (b *TaskBoard) CreateTask(ctx context.Context, in ports.CreateTaskInput, actor domain.Actor) (*domain.Task, error) {
	release, err := b.locker.Lock(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create task: lock project: %w", err)
	}
	defer unlock(b.log, in.ProjectID, release)

	canManage, err := b.authz.CanManage(ctx, actor, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if !canManage {
		return nil, b.reject("create", domain.ErrForbidden)
	}

	if _, err := b.projects.FindByID(ctx, in.ProjectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, b.reject("create", domain.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("create task: %w", err)
	}

	if !in.Status.Valid() {
		return nil, b.reject("create", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status))
	}

	isMember, err := b.members.ExistsMember(ctx, in.AssigneeID, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create task: check assignee: %w", err)
	}
	if !isMember {
		return nil, b.reject("create", domain.ErrInvalidAssignee)
	}

	if in.Status == domain.StatusInProgress {
		if err := b.checkWIP(ctx, in.ProjectID); err != nil {
			return nil, b.reject("create", err)
		}
	}

	assignee, err := b.users.FindByID(ctx, in.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("create task: load assignee: %w", err)
	}

	maxPos, err := b.tasks.MaxPosition(ctx, in.ProjectID, in.Status)
	if err != nil {
		return nil, fmt.Errorf("create task: max position: %w", err)
	}

	now := b.now()
	task := &domain.Task{
		ID:                  b.newID(),
		ProjectID:           in.ProjectID,
		Title:               in.Title,
		Description:         in.Description,
		Tags:                in.Tags,
		Deadline:            in.Deadline,
		Status:              in.Status,
		AssigneeID:          assignee.ID,
		AssigneeDisplayName: assignee.Username,
		Position:            maxPos + 1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := b.tasks.Create(ctx, task); err != nil {
		b.log.Error().Err(err).Str("project_id", in.ProjectID).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	b.log.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Str("status", string(task.Status)).
		Int("position", task.Position).
		Str("actor", actor.ID).
		Msg("task created")

	return task, nil
}

// TransitionTask applies an update to a task and renormalizes the
// destination bucket. Managers and admins may change every field; the
// assignee may only change status and position.
func (b *TaskBoard) TransitionTask(ctx context.Context, taskID string, upd ports.TaskUpdate, actor domain.Actor) (*domain.Task, error) {
	current, err := b.findTask(ctx, taskID)
	if err != nil {
		return nil, b.reject("transition", err)
	}

	release, err := b.locker.Lock(ctx, current.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("transition task: lock project: %w", err)
	}
	defer unlock(b.log, current.ProjectID, release)

	// Reload under the lock; the task may have moved or vanished meanwhile.
	task, err := b.findTask(ctx, taskID)
	if err != nil {
		return nil, b.reject("transition", err)
	}

	capability, err := b.authz.Resolve(ctx, actor, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("transition task: %w", err)
	}
	isAssignee := task.AssigneeID != "" && task.AssigneeID == actor.ID
	if !capability.CanManage() && !isAssignee {
		return nil, b.reject("transition", domain.ErrForbidden)
	}

	if !upd.Status.Valid() {
		return nil, b.reject("transition", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, upd.Status))
	}

	if upd.Status == domain.StatusInProgress && task.Status != domain.StatusInProgress {
		if err := b.checkWIP(ctx, task.ProjectID); err != nil {
			return nil, b.reject("transition", err)
		}
	}

	from := task.Status

	if capability.CanManage() {
		if upd.Title != nil {
			task.Title = *upd.Title
		}
		if upd.Description != nil {
			task.Description = *upd.Description
		}
		if upd.Tags != nil {
			task.Tags = *upd.Tags
		}
		switch {
		case upd.ClearDeadline:
			task.Deadline = nil
		case upd.Deadline != nil:
			task.Deadline = upd.Deadline
		}
		// The new assignee's membership is deliberately not re-checked here;
		// only creation validates membership.
		if upd.AssigneeID != nil {
			assignee, err := b.users.FindByID(ctx, *upd.AssigneeID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, b.reject("transition", domain.ErrUserNotFound)
				}
				return nil, fmt.Errorf("transition task: load assignee: %w", err)
			}
			task.AssigneeID = assignee.ID
			task.AssigneeDisplayName = assignee.Username
		}
	}

	task.Status = upd.Status
	if upd.Position != nil {
		task.Position = *upd.Position
	}
	task.UpdatedAt = b.now()

	if err := b.tasks.Update(ctx, task); err != nil {
		b.log.Error().Err(err).Str("task_id", task.ID).Msg("failed to update task")
		return nil, fmt.Errorf("transition task: %w", err)
	}

	positions, err := b.renormalize(ctx, task.ProjectID, task.Status)
	if err != nil {
		return nil, fmt.Errorf("transition task: %w", err)
	}
	if pos, ok := positions[task.ID]; ok {
		task.Position = pos
	}

	metrics.TaskTransitionsTotal.WithLabelValues(string(from), string(task.Status)).Inc()
	b.log.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Str("from", string(from)).
		Str("to", string(task.Status)).
		Int("position", task.Position).
		Str("actor", actor.ID).
		Bool("manager", capability.CanManage()).
		Msg("task transitioned")

	return task, nil
}

// renormalize rewrites the positions of one bucket to 0..n-1 in
// (position, id) order and returns the final position of every task in it.
// Only tasks whose stored position differs are written. A failure part-way
// leaves the bucket non-dense until the next transition into it.
func (b *TaskBoard) renormalize(ctx context.Context, projectID string, status domain.TaskStatus) (map[string]int, error) {
	bucket, err := b.tasks.ListBucket(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("renormalize: list bucket: %w", err)
	}
	domain.SortBucket(bucket)

	positions := make(map[string]int, len(bucket))
	for i, t := range bucket {
		positions[t.ID] = i
		if t.Position == i {
			continue
		}
		if err := b.tasks.UpdatePosition(ctx, t.ID, i); err != nil {
			metrics.RenormalizationFailuresTotal.Inc()
			b.log.Error().Err(err).
				Str("project_id", projectID).
				Str("status", string(status)).
				Str("task_id", t.ID).
				Msg("renormalization aborted, bucket left non-dense")
			return nil, fmt.Errorf("renormalize: update position: %w", err)
		}
		metrics.RenormalizedPositionsTotal.Inc()
	}
	return positions, nil
}

// DeleteTask removes a task. The vacated bucket is not renormalized; its gap
// persists until the next transition into that bucket.
func (b *TaskBoard) DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error {
	current, err := b.findTask(ctx, taskID)
	if err != nil {
		return b.reject("delete", err)
	}

	release, err := b.locker.Lock(ctx, current.ProjectID)
	if err != nil {
		return fmt.Errorf("delete task: lock project: %w", err)
	}
	defer unlock(b.log, current.ProjectID, release)

	task, err := b.findTask(ctx, taskID)
	if err != nil {
		return b.reject("delete", err)
	}

	canManage, err := b.authz.CanManage(ctx, actor, task.ProjectID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !canManage {
		return b.reject("delete", domain.ErrForbidden)
	}

	if err := b.tasks.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	metrics.TasksDeletedTotal.Inc()
	b.log.Info().Str("task_id", task.ID).Str("project_id", task.ProjectID).Str("actor", actor.ID).Msg("task deleted")
	return nil
}

// ListTasks returns a project's board ordered by (status, position) when
// projectID is set, otherwise the tasks assigned to the actor.
func (b *TaskBoard) ListTasks(ctx context.Context, projectID string, actor domain.Actor) ([]*domain.Task, error) {
	if projectID == "" {
		tasks, err := b.tasks.ListByAssignee(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return tasks, nil
	}

	isMember, err := b.authz.IsMember(ctx, actor, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}

	tasks, err := b.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	domain.SortBoard(tasks)
	return tasks, nil
}

// GetTask returns a single task to any member of its project.
func (b *TaskBoard) GetTask(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error) {
	task, err := b.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	isMember, err := b.authz.IsMember(ctx, actor, task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (b *TaskBoard) checkWIP(ctx context.Context, projectID string) error {
	n, err := b.tasks.CountByStatus(ctx, projectID, domain.StatusInProgress)
	if err != nil {
		return fmt.Errorf("count in-progress tasks: %w", err)
	}
	if n >= domain.WIPLimit {
		return domain.ErrWIPLimitExceeded
	}
	return nil
}

func (b *TaskBoard) findTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := b.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// reject records a rejected mutation and returns err unchanged.
func (b *TaskBoard) reject(operation string, err error) error {
	metrics.OperationRejectionsTotal.WithLabelValues(operation, rejectionReason(err)).Inc()
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidAssignee):
		return "invalid_assignee"
	case errors.Is(err, domain.ErrWIPLimitExceeded):
		return "wip_limit"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "invalid_status"
	default:
		return "error"
	}
}
