package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct {
	db *sql.DB
}

const commentColumns = `id, project_id, author_id, author_username, content, pinned, created_at`

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.AuthorID, c.AuthorUsername, c.Content, c.Pinned, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM project_comments WHERE id = ?`, id)
	return scanComment(row)
}

func (r *CommentRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM project_comments WHERE project_id = ? ORDER BY created_at DESC, id DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE project_comments SET pinned = ? WHERE id = ?`, pinned, id)
	if err != nil {
		return fmt.Errorf("pin comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_comments WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.AuthorUsername, &c.Content, &c.Pinned, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &c, nil
}
