package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository.
type TaskRepository struct {
	db *sql.DB
}

const taskColumns = `id, project_id, title, description, tags, deadline, status,
    assignee_id, assignee_display_name, position, created_at, updated_at`

func deadlineArg(d *domain.Task) sql.NullTime {
	if d.Deadline == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *d.Deadline, Valid: true}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Tags, deadlineArg(t), string(t.Status),
		t.AssigneeID, t.AssigneeDisplayName, t.Position, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY status ASC, position ASC, id ASC`,
		projectID,
	)
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE assignee_id = ? ORDER BY project_id ASC, status ASC, position ASC, id ASC`,
		userID,
	)
}

func (r *TaskRepository) ListBucket(ctx context.Context, projectID string, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? AND status = ? ORDER BY position ASC, id ASC`,
		projectID, string(status),
	)
}

func (r *TaskRepository) CountByStatus(ctx context.Context, projectID string, status domain.TaskStatus) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ? AND status = ?`, projectID, string(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) MaxPosition(ctx context.Context, projectID string, status domain.TaskStatus) (int, error) {
	var pos int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM tasks WHERE project_id = ? AND status = ?`, projectID, string(status),
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	return pos, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, tags = ?, deadline = ?, status = ?,
            assignee_id = ?, assignee_display_name = ?, position = ?, updated_at = ?
         WHERE id = ?`,
		t.Title, t.Description, t.Tags, deadlineArg(t), string(t.Status),
		t.AssigneeID, t.AssigneeDisplayName, t.Position, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`, position, id)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

func (r *TaskRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t        domain.Task
		deadline sql.NullTime
		status   string
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Tags, &deadline, &status,
		&t.AssigneeID, &t.AssigneeDisplayName, &t.Position, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	return &t, nil
}
