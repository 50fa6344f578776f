package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// CommentService runs a project's discussion thread. Members read and
// write; authors and admins delete; managers and admins pin.
type CommentService struct {
	comments ports.CommentRepository
	projects ports.ProjectRepository
	authz    *Authorizer
	log      zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewCommentService(
	comments ports.CommentRepository,
	projects ports.ProjectRepository,
	members ports.MembershipDirectory,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		projects: projects,
		authz:    NewAuthorizer(members),
		log:      log,
		newID:    newID,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, projectID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if err := s.requireMember(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:             s.newID(),
		ProjectID:      projectID,
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		Content:        content,
		CreatedAt:      s.now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.log.Info().Str("comment_id", c.ID).Str("project_id", projectID).Str("actor", actor.ID).Msg("comment added")
	return c, nil
}

// DeleteComment removes a comment. Only its author or an admin may.
func (s *CommentService) DeleteComment(ctx context.Context, actor domain.Actor, projectID, commentID string) error {
	c, err := s.find(ctx, projectID, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != actor.ID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.comments.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.log.Info().Str("comment_id", c.ID).Str("project_id", projectID).Str("actor", actor.ID).Msg("comment deleted")
	return nil
}

// ListComments returns the thread split into pinned and unpinned, newest
// first.
func (s *CommentService) ListComments(ctx context.Context, actor domain.Actor, projectID string) (*domain.CommentThread, error) {
	if err := s.requireMember(ctx, actor, projectID); err != nil {
		return nil, err
	}
	all, err := s.comments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	thread := domain.SplitPinned(all)
	return &thread, nil
}

// TogglePin flips the pin state of a comment.
func (s *CommentService) TogglePin(ctx context.Context, actor domain.Actor, projectID, commentID string) (*domain.Comment, error) {
	c, err := s.find(ctx, projectID, commentID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.CanManage(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	c.Pinned = !c.Pinned
	if err := s.comments.SetPinned(ctx, c.ID, c.Pinned); err != nil {
		return nil, fmt.Errorf("pin comment: %w", err)
	}

	s.log.Info().Str("comment_id", c.ID).Bool("pinned", c.Pinned).Str("actor", actor.ID).Msg("comment pin toggled")
	return c, nil
}

// find loads a comment and checks it belongs to projectID.
func (s *CommentService) find(ctx context.Context, projectID, commentID string) (*domain.Comment, error) {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.ProjectID != projectID {
		return nil, domain.ErrCommentProjectMismatch
	}
	return c, nil
}

func (s *CommentService) requireMember(ctx context.Context, actor domain.Actor, projectID string) error {
	ok, err := s.authz.IsMember(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
