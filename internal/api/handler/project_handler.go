package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// ProjectHandler handles project and membership routes.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /v1/projects.
//
// @Summary      List my projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   projectResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListProjects(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]projectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i].Project, projects[i].Role))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.CreateProject(c.Request().Context(), actor, req.Title, req.Description, req.MemberIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProjectResponse(p, domain.ProjectRoleManager))
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	p, err := h.service.GetProject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(&p.Project, p.Role))
}

// Update handles PUT /v1/projects/:id.
//
// @Summary      Update a project and sync its members
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.UpdateProject(c.Request().Context(), actor, c.Param("id"), toProjectUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(p, ""))
}

// RoleSelf handles GET /v1/projects/:id/role/self.
//
// @Summary      My role in a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  roleResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id}/role/self [get]
func (h *ProjectHandler) RoleSelf(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	capability, err := h.service.RoleInProject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: capability.String()})
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project with its tasks and memberships
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProject(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMembers handles GET /v1/projects/:id/members.
//
// @Summary      List project members
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {array}   memberResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	members, err := h.service.ListMembers(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

// AddMember handles POST /v1/projects/:id/members.
//
// @Summary      Add a member to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Project ID"
// @Param        body  body      addMemberRequest  true  "User to add"
// @Success      201   {object}  memberResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req addMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.AddMember(c.Request().Context(), actor, c.Param("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMemberResponse(m))
}

// RemoveMember handles DELETE /v1/projects/:id/members/:user_id.
//
// @Summary      Remove a member from a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id       path  string  true  "Project ID"
// @Param        user_id  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveMember(c.Request().Context(), actor, c.Param("id"), c.Param("user_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
