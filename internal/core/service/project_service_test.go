package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

func newProjectFixture(t *testing.T) (*ProjectService, *boardFixture) {
	t.Helper()
	f := newBoardFixture(t)
	svc := NewProjectService(f.projects, f.members, f.users, f.tasks, f.comments, f.locker, zerolog.Nop())
	return svc, f
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, outsider, "Launch", "q3", []string{member.ID, "u-ghost", outsider.ID, member.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	role, ok, err := f.members.MembershipOf(ctx, outsider.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.ProjectRoleManager, role)

	role, ok, _ = f.members.MembershipOf(ctx, member.ID, p.ID)
	assert.True(t, ok)
	assert.Equal(t, domain.ProjectRoleMember, role)

	members, err := f.members.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2, "unknown and duplicate ids are skipped")
}

func TestProjectService_CreateProject_RequiresTitle(t *testing.T) {
	svc, _ := newProjectFixture(t)

	_, err := svc.CreateProject(context.Background(), member, "   ", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProjectService_ListProjects(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	mine, err := svc.ListProjects(ctx, member)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, projectID, mine[0].ID)
	assert.Equal(t, domain.ProjectRoleMember, mine[0].Role)

	none, err := svc.ListProjects(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectService_Members(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	_, err := svc.AddMember(ctx, member, projectID, outsider.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	m, err := svc.AddMember(ctx, manager, projectID, outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectRoleMember, m.Role)
	assert.Equal(t, "olga", m.Username)

	_, err = svc.AddMember(ctx, manager, projectID, outsider.ID)
	assert.ErrorIs(t, err, domain.ErrMembershipExists)

	_, err = svc.AddMember(ctx, manager, projectID, "u-ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := svc.ListMembers(ctx, outsider, projectID)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	require.NoError(t, svc.RemoveMember(ctx, manager, projectID, outsider.ID))
	_, err = svc.ListMembers(ctx, outsider, projectID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.RemoveMember(ctx, manager, projectID, outsider.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DeleteProject(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()
	f.create(t, "x", domain.StatusToDo, member.ID)

	err := svc.DeleteProject(ctx, member, projectID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, f.tasks.snapshot(), 1)

	require.NoError(t, svc.DeleteProject(ctx, manager, projectID))
	assert.Empty(t, f.tasks.snapshot())

	_, err = f.projects.FindByID(ctx, projectID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, ok, _ := f.members.MembershipOf(ctx, manager.ID, projectID)
	assert.False(t, ok)
}

func TestProjectService_CreateProject_RollsBackWithoutManager(t *testing.T) {
	svc, f := newProjectFixture(t)
	f.members.failAdd = errStorage

	_, err := svc.CreateProject(context.Background(), outsider, "Launch", "", nil)
	require.ErrorIs(t, err, errStorage)

	ids := make([]string, 0)
	f.projects.mu.Lock()
	for id := range f.projects.projects {
		ids = append(ids, id)
	}
	f.projects.mu.Unlock()
	assert.Equal(t, []string{projectID}, ids, "only the fixture project remains")
}

func TestProjectService_GetProject(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	got, err := svc.GetProject(ctx, member, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Board", got.Title)
	assert.Equal(t, domain.ProjectRoleMember, got.Role)

	got, err = svc.GetProject(ctx, admin, projectID)
	require.NoError(t, err)
	assert.Empty(t, got.Role)

	_, err = svc.GetProject(ctx, outsider, projectID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProjectService_RoleInProject(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	cases := []struct {
		actor domain.Actor
		want  string
	}{
		{manager, "MANAGER"},
		{member, "MEMBER"},
		{admin, "ADMIN"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			got, err := svc.RoleInProject(ctx, tc.actor, projectID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	_, err := svc.RoleInProject(ctx, outsider, projectID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProjectService_UpdateProject_Fields(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()
	title := "  Relaunch "
	desc := "q4"

	_, err := svc.UpdateProject(ctx, member, projectID, ports.ProjectUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err := svc.UpdateProject(ctx, manager, projectID, ports.ProjectUpdate{Title: &title, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", p.Title)

	stored, err := f.projects.FindByID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", stored.Title)
	assert.Equal(t, "q4", stored.Description)

	blank := " "
	_, err = svc.UpdateProject(ctx, manager, projectID, ports.ProjectUpdate{Title: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProject(ctx, manager, "p-missing", ports.ProjectUpdate{Title: &title})
	assert.Error(t, err)
}

func TestProjectService_UpdateProject_SyncsMembers(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()

	// member2 is dropped, outsider joins, the caller stays although unlisted.
	_, err := svc.UpdateProject(ctx, manager, projectID, ports.ProjectUpdate{
		MemberIDs: []string{member.ID, outsider.ID, "u-ghost", outsider.ID},
	})
	require.NoError(t, err)

	list, err := f.members.ListByProject(ctx, projectID)
	require.NoError(t, err)
	roles := map[string]domain.ProjectRole{}
	for _, m := range list {
		roles[m.UserID] = m.Role
	}
	assert.Equal(t, map[string]domain.ProjectRole{
		manager.ID:  domain.ProjectRoleManager,
		member.ID:   domain.ProjectRoleMember,
		outsider.ID: domain.ProjectRoleMember,
	}, roles)

	stored, err := f.projects.FindByID(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Board", stored.Title, "fields untouched when omitted")
}

func TestProjectService_UpdateProject_NilMembersKeepsSet(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()
	desc := "notes"

	_, err := svc.UpdateProject(ctx, admin, projectID, ports.ProjectUpdate{Description: &desc})
	require.NoError(t, err)

	list, err := f.members.ListByProject(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, 1, f.locker.held[projectID])
}

func TestProjectService_DeleteProject_RemovesComments(t *testing.T) {
	svc, f := newProjectFixture(t)
	ctx := context.Background()
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{ID: "c1", ProjectID: projectID, Content: "hi"}))
	require.NoError(t, f.comments.Create(ctx, &domain.Comment{ID: "c2", ProjectID: "p-other", Content: "hi"}))

	require.NoError(t, svc.DeleteProject(ctx, manager, projectID))

	_, err := f.comments.FindByID(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	_, err = f.comments.FindByID(ctx, "c2")
	assert.NoError(t, err)
}
