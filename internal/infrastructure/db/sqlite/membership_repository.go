package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// MembershipRepository implements ports.MembershipDirectory. The
// (user_id, project_id) primary key enforces one membership per pair.
type MembershipRepository struct {
	db *sql.DB
}

func (r *MembershipRepository) MembershipOf(ctx context.Context, userID, projectID string) (domain.ProjectRole, bool, error) {
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM project_members WHERE user_id = ? AND project_id = ?`, userID, projectID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find membership: %w", err)
	}
	return domain.ProjectRole(role), true, nil
}

func (r *MembershipRepository) ExistsMember(ctx context.Context, userID, projectID string) (bool, error) {
	_, ok, err := r.MembershipOf(ctx, userID, projectID)
	return ok, err
}

func (r *MembershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_members (user_id, project_id, username, role, joined_at) VALUES (?, ?, ?, ?, ?)`,
		m.UserID, m.ProjectID, m.Username, string(m.Role), m.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMembershipExists
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, userID, projectID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE user_id = ? AND project_id = ?`, userID, projectID,
	)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Membership, error) {
	return r.list(ctx, `WHERE project_id = ?`, projectID)
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	return r.list(ctx, `WHERE user_id = ?`, userID)
}

func (r *MembershipRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func (r *MembershipRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_members WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete memberships: %w", err)
	}
	return nil
}

func (r *MembershipRepository) list(ctx context.Context, where string, arg string) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, project_id, username, role, joined_at FROM project_members `+where+` ORDER BY joined_at ASC, user_id ASC`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	out := []*domain.Membership{}
	for rows.Next() {
		var (
			m    domain.Membership
			role string
		)
		if err := rows.Scan(&m.UserID, &m.ProjectID, &m.Username, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.Role = domain.ProjectRole(role)
		out = append(out, &m)
	}
	return out, rows.Err()
}
