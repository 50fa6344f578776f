package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// ProjectService manages projects and their memberships. It is a thin layer
// over storage; every permission decision goes through the Authorizer.
type ProjectService struct {
	projects ports.ProjectRepository
	members  ports.MembershipDirectory
	users    ports.UserRepository
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	authz    *Authorizer
	locker   ports.ProjectLocker
	log      zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	members ports.MembershipDirectory,
	users ports.UserRepository,
	tasks ports.TaskRepository,
	comments ports.CommentRepository,
	locker ports.ProjectLocker,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		users:    users,
		tasks:    tasks,
		comments: comments,
		authz:    NewAuthorizer(members),
		locker:   locker,
		log:      log,
	}
}

// CreateProject stores a project with the actor as MANAGER. Listed member ids
// that resolve to existing users, other than the creator, join as MEMBER;
// unknown ids are skipped.
func (s *ProjectService) CreateProject(ctx context.Context, actor domain.Actor, title, description string, memberIDs []string) (*domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          newID(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	creator := &domain.Membership{
		UserID:    actor.ID,
		ProjectID: project.ID,
		Username:  actor.Username,
		Role:      domain.ProjectRoleManager,
		JoinedAt:  now,
	}
	if err := s.members.Add(ctx, creator); err != nil {
		// A project never outlives a failed manager membership.
		if delErr := s.projects.Delete(ctx, project.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("project_id", project.ID).Msg("failed to roll back project")
		}
		return nil, fmt.Errorf("create project: add manager: %w", err)
	}

	if err := s.addMembers(ctx, project.ID, memberIDs, map[string]struct{}{actor.ID: {}}); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", project.ID).Str("actor", actor.ID).Msg("project created")
	return project, nil
}

// ListProjects returns the projects the actor belongs to, with its role.
func (s *ProjectService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.ProjectWithRole, error) {
	memberships, err := s.members.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(memberships) == 0 {
		return []domain.ProjectWithRole{}, nil
	}

	roles := make(map[string]domain.ProjectRole, len(memberships))
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		roles[m.ProjectID] = m.Role
		ids = append(ids, m.ProjectID)
	}

	projects, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.ProjectWithRole, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.ProjectWithRole{Project: *p, Role: roles[p.ID]})
	}
	return out, nil
}

// DeleteProject removes a project with its memberships, tasks and comments.
func (s *ProjectService) DeleteProject(ctx context.Context, actor domain.Actor, projectID string) error {
	release, err := s.locker.Lock(ctx, projectID)
	if err != nil {
		return fmt.Errorf("delete project: lock project: %w", err)
	}
	defer unlock(s.log, projectID, release)

	if err := s.requireManager(ctx, actor, projectID); err != nil {
		return err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return err
	}

	if err := s.tasks.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: tasks: %w", err)
	}
	if err := s.comments.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: comments: %w", err)
	}
	if err := s.members.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: members: %w", err)
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.Info().Str("project_id", projectID).Str("actor", actor.ID).Msg("project deleted")
	return nil
}

// AddMember adds an existing user to the project as MEMBER.
func (s *ProjectService) AddMember(ctx context.Context, actor domain.Actor, projectID, userID string) (*domain.Membership, error) {
	if err := s.requireManager(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := &domain.Membership{
		UserID:    user.ID,
		ProjectID: projectID,
		Username:  user.Username,
		Role:      domain.ProjectRoleMember,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.members.Add(ctx, m); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member added")
	return m, nil
}

// RemoveMember drops a membership. Tasks assigned to the removed user keep
// their assignee.
func (s *ProjectService) RemoveMember(ctx context.Context, actor domain.Actor, projectID, userID string) error {
	if err := s.requireManager(ctx, actor, projectID); err != nil {
		return err
	}
	if err := s.members.Remove(ctx, userID, projectID); err != nil {
		return err
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member removed")
	return nil
}

// ListMembers returns the memberships of a project to any of its members.
func (s *ProjectService) ListMembers(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Membership, error) {
	ok, err := s.authz.IsMember(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return s.members.ListByProject(ctx, projectID)
}

// GetProject returns a project to one of its members, with the member's
// role. Admins see every project; their role is empty unless they joined.
func (s *ProjectService) GetProject(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectWithRole, error) {
	ok, err := s.authz.IsMember(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	role, _, err := s.members.MembershipOf(ctx, actor.ID, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &domain.ProjectWithRole{Project: *project, Role: role}, nil
}

// RoleInProject reports the actor's capability on the project.
func (s *ProjectService) RoleInProject(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error) {
	capability, err := s.authz.Resolve(ctx, actor, projectID)
	if err != nil {
		return domain.CapabilityNone, err
	}
	if !capability.IsMember() {
		return domain.CapabilityNone, domain.ErrForbidden
	}
	return capability, nil
}

// UpdateProject edits title and description and, when MemberIDs is set,
// makes the member set match it: members missing from the list are removed
// (never the caller), new users join as MEMBER and unknown ids are skipped.
// Existing members keep their role.
func (s *ProjectService) UpdateProject(ctx context.Context, actor domain.Actor, projectID string, upd ports.ProjectUpdate) (*domain.Project, error) {
	release, err := s.locker.Lock(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("update project: lock project: %w", err)
	}
	defer unlock(s.log, projectID, release)

	if err := s.requireManager(ctx, actor, projectID); err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
		}
		project.Title = title
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.Title != nil || upd.Description != nil {
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
	}

	if upd.MemberIDs != nil {
		if err := s.syncMembers(ctx, actor, projectID, upd.MemberIDs); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
	}

	s.log.Info().Str("project_id", projectID).Str("actor", actor.ID).Msg("project updated")
	return project, nil
}

func (s *ProjectService) syncMembers(ctx context.Context, actor domain.Actor, projectID string, memberIDs []string) error {
	want := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		want[id] = struct{}{}
	}

	current, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	present := map[string]struct{}{actor.ID: {}}
	for _, m := range current {
		present[m.UserID] = struct{}{}
		if _, keep := want[m.UserID]; keep || m.UserID == actor.ID {
			continue
		}
		if err := s.members.Remove(ctx, m.UserID, projectID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("remove member: %w", err)
		}
		s.log.Debug().Str("project_id", projectID).Str("user_id", m.UserID).Msg("member dropped")
	}

	return s.addMembers(ctx, projectID, memberIDs, present)
}

// addMembers adds each listed user as MEMBER, skipping ids in skip, empty
// ids, repeats and unknown users.
func (s *ProjectService) addMembers(ctx context.Context, projectID string, ids []string, skip map[string]struct{}) error {
	now := time.Now().UTC()
	for _, id := range ids {
		if _, dup := skip[id]; dup || id == "" {
			continue
		}
		skip[id] = struct{}{}

		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.Debug().Str("user_id", id).Msg("skipping unknown member")
				continue
			}
			return fmt.Errorf("load member: %w", err)
		}
		m := &domain.Membership{
			UserID:    user.ID,
			ProjectID: projectID,
			Username:  user.Username,
			Role:      domain.ProjectRoleMember,
			JoinedAt:  now,
		}
		if err := s.members.Add(ctx, m); err != nil && !errors.Is(err, domain.ErrMembershipExists) {
			return fmt.Errorf("add member: %w", err)
		}
	}
	return nil
}

func (s *ProjectService) requireManager(ctx context.Context, actor domain.Actor, projectID string) error {
	ok, err := s.authz.CanManage(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
