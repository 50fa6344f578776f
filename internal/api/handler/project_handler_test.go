package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

type stubProjectService struct {
	createFn       func(ctx context.Context, actor domain.Actor, title, description string, memberIDs []string) (*domain.Project, error)
	listFn         func(ctx context.Context, actor domain.Actor) ([]domain.ProjectWithRole, error)
	deleteFn       func(ctx context.Context, actor domain.Actor, projectID string) error
	addMemberFn    func(ctx context.Context, actor domain.Actor, projectID, userID string) (*domain.Membership, error)
	removeMemberFn func(ctx context.Context, actor domain.Actor, projectID, userID string) error
	listMembersFn  func(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Membership, error)
	getFn          func(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectWithRole, error)
	updateFn       func(ctx context.Context, actor domain.Actor, projectID string, upd ports.ProjectUpdate) (*domain.Project, error)
	roleFn         func(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error)
}

func (s *stubProjectService) GetProject(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectWithRole, error) {
	return s.getFn(ctx, actor, projectID)
}

func (s *stubProjectService) UpdateProject(ctx context.Context, actor domain.Actor, projectID string, upd ports.ProjectUpdate) (*domain.Project, error) {
	return s.updateFn(ctx, actor, projectID, upd)
}

func (s *stubProjectService) RoleInProject(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error) {
	return s.roleFn(ctx, actor, projectID)
}

func (s *stubProjectService) CreateProject(ctx context.Context, actor domain.Actor, title, description string, memberIDs []string) (*domain.Project, error) {
	return s.createFn(ctx, actor, title, description, memberIDs)
}

func (s *stubProjectService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.ProjectWithRole, error) {
	return s.listFn(ctx, actor)
}

func (s *stubProjectService) DeleteProject(ctx context.Context, actor domain.Actor, projectID string) error {
	return s.deleteFn(ctx, actor, projectID)
}

func (s *stubProjectService) AddMember(ctx context.Context, actor domain.Actor, projectID, userID string) (*domain.Membership, error) {
	return s.addMemberFn(ctx, actor, projectID, userID)
}

func (s *stubProjectService) RemoveMember(ctx context.Context, actor domain.Actor, projectID, userID string) error {
	return s.removeMemberFn(ctx, actor, projectID, userID)
}

func (s *stubProjectService) ListMembers(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Membership, error) {
	return s.listMembersFn(ctx, actor, projectID)
}

func TestProjectHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		createFn: func(ctx context.Context, actor domain.Actor, title, description string, memberIDs []string) (*domain.Project, error) {
			if title != "Launch" || len(memberIDs) != 2 {
				t.Fatalf("unexpected args: %s %v", title, memberIDs)
			}
			return &domain.Project{ID: "p1", Title: title}, nil
		},
	}

	rec := httptest.NewRecorder()
	body := `{"title":"Launch","description":"q3","member_ids":["u2","u3"]}`
	c := withActor(e.NewContext(jsonRequest(http.MethodPost, "/v1/projects", body), rec), "u1", "USER")

	if err := NewProjectHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "p1" || resp.Role != "MANAGER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProjectHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		listFn: func(ctx context.Context, actor domain.Actor) ([]domain.ProjectWithRole, error) {
			return []domain.ProjectWithRole{
				{Project: domain.Project{ID: "p1"}, Role: domain.ProjectRoleMember},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := withActor(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/projects", nil), rec), "u1", "USER")

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].Role != "MEMBER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProjectHandler_AddMember_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		addMemberFn: func(ctx context.Context, actor domain.Actor, projectID, userID string) (*domain.Membership, error) {
			if projectID != "p1" || userID != "u2" {
				t.Fatalf("unexpected args: %s %s", projectID, userID)
			}
			return nil, domain.ErrMembershipExists
		},
	}

	c := withActor(e.NewContext(jsonRequest(http.MethodPost, "/v1/projects/p1/members", `{"user_id":"u2"}`), httptest.NewRecorder()), "u1", "USER")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).AddMember(c); !errors.Is(err, domain.ErrMembershipExists) {
		t.Fatalf("expected ErrMembershipExists, got %v", err)
	}
}

func TestProjectHandler_RemoveMember(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		removeMemberFn: func(ctx context.Context, actor domain.Actor, projectID, userID string) error {
			if projectID != "p1" || userID != "u2" {
				t.Fatalf("unexpected args: %s %s", projectID, userID)
			}
			return nil
		},
	}

	rec := httptest.NewRecorder()
	c := withActor(e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/projects/p1/members/u2", nil), rec), "u1", "USER")
	c.SetParamNames("id", "user_id")
	c.SetParamValues("p1", "u2")

	if err := NewProjectHandler(stub).RemoveMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestProjectHandler_Delete_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		deleteFn: func(ctx context.Context, actor domain.Actor, projectID string) error {
			return domain.ErrForbidden
		},
	}

	c := withActor(e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/projects/p1", nil), httptest.NewRecorder()), "u1", "USER")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		getFn: func(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectWithRole, error) {
			if projectID != "p1" {
				t.Fatalf("unexpected project: %s", projectID)
			}
			return &domain.ProjectWithRole{Project: domain.Project{ID: "p1", Title: "Launch"}, Role: domain.ProjectRoleMember}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := withActor(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/projects/p1", nil), rec), "u1", "USER")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Title != "Launch" || resp.Role != "MEMBER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProjectHandler_Update_MemberListPresence(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		wantMembers []string
		wantTitle   bool
	}{
		{"absent list keeps members", `{"title":"Relaunch"}`, nil, true},
		{"empty list drops members", `{"member_ids":[]}`, []string{}, false},
		{"listed members", `{"member_ids":["u2"]}`, []string{"u2"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			var got ports.ProjectUpdate
			stub := &stubProjectService{
				updateFn: func(ctx context.Context, actor domain.Actor, projectID string, upd ports.ProjectUpdate) (*domain.Project, error) {
					got = upd
					return &domain.Project{ID: projectID, Title: "Relaunch"}, nil
				},
			}

			rec := httptest.NewRecorder()
			c := withActor(e.NewContext(jsonRequest(http.MethodPut, "/v1/projects/p1", tc.body), rec), "u1", "USER")
			c.SetParamNames("id")
			c.SetParamValues("p1")

			if err := NewProjectHandler(stub).Update(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if (got.MemberIDs == nil) != (tc.wantMembers == nil) || len(got.MemberIDs) != len(tc.wantMembers) {
				t.Fatalf("member ids = %#v, want %#v", got.MemberIDs, tc.wantMembers)
			}
			if (got.Title != nil) != tc.wantTitle {
				t.Fatalf("title presence = %v, want %v", got.Title != nil, tc.wantTitle)
			}
		})
	}
}

func TestProjectHandler_RoleSelf(t *testing.T) {
	e := newTestEcho()
	stub := &stubProjectService{
		roleFn: func(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error) {
			if actor.Role == domain.RoleAdmin {
				return domain.CapabilityAdmin, nil
			}
			return domain.CapabilityNone, domain.ErrForbidden
		},
	}

	rec := httptest.NewRecorder()
	c := withActor(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/projects/p1/role/self", nil), rec), "u1", "ADMIN")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := NewProjectHandler(stub).RoleSelf(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Role != "ADMIN" {
		t.Fatalf("unexpected role: %+v", resp)
	}

	c = withActor(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/projects/p1/role/self", nil), httptest.NewRecorder()), "u2", "USER")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := NewProjectHandler(stub).RoleSelf(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
