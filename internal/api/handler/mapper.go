package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDeadline returns nil for an absent or blank value.
func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: deadline %q is not a date", domain.ErrInvalidInput, s)
}

func toCreateTaskInput(req createTaskRequest) (ports.CreateTaskInput, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return ports.CreateTaskInput{}, err
	}
	return ports.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Deadline:    deadline,
		Status:      domain.TaskStatus(req.Status),
		AssigneeID:  req.AssigneeID,
	}, nil
}

func toTaskUpdate(req updateTaskRequest) (ports.TaskUpdate, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return ports.TaskUpdate{}, err
	}
	return ports.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Deadline:    deadline,
		// An explicit "" clears the deadline; an absent field keeps it.
		ClearDeadline: req.Deadline != nil && strings.TrimSpace(*req.Deadline) == "",
		Status:        domain.TaskStatus(req.Status),
		AssigneeID:    req.AssigneeID,
		Position:      req.Position,
	}, nil
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:                  t.ID,
		ProjectID:           t.ProjectID,
		Title:               t.Title,
		Description:         t.Description,
		Status:              string(t.Status),
		Tags:                t.Tags,
		Deadline:            t.Deadline,
		AssigneeID:          t.AssigneeID,
		AssigneeDisplayName: t.AssigneeDisplayName,
		Position:            t.Position,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toProjectResponse(p *domain.Project, role domain.ProjectRole) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Role:        string(role),
		CreatedAt:   p.CreatedAt,
	}
}

func toMemberResponse(m *domain.Membership) memberResponse {
	return memberResponse{
		UserID:   m.UserID,
		Username: m.Username,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:             c.ID,
		ProjectID:      c.ProjectID,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		Content:        c.Content,
		Pinned:         c.Pinned,
		CreatedAt:      c.CreatedAt,
	}
}

func toCommentResponses(comments []*domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

func toProjectUpdate(req updateProjectRequest) ports.ProjectUpdate {
	return ports.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	}
}
