package service

import (
	"context"
	"fmt"

	"github.com/sgsm/taskboard/internal/core/domain"
	"github.com/sgsm/taskboard/internal/core/ports"
)

// Authorizer resolves the effective capability of an actor on a project.
// It has no side effects and is called on every board operation.
type Authorizer struct {
	members ports.MembershipDirectory
}

func NewAuthorizer(members ports.MembershipDirectory) *Authorizer {
	return &Authorizer{members: members}
}

// Resolve returns CapabilityAdmin for global admins without touching the
// membership directory, otherwise the capability of the actor's membership,
// or CapabilityNone when there is none.
func (a *Authorizer) Resolve(ctx context.Context, actor domain.Actor, projectID string) (domain.Capability, error) {
	if actor.IsAdmin() {
		return domain.CapabilityAdmin, nil
	}

	role, ok, err := a.members.MembershipOf(ctx, actor.ID, projectID)
	if err != nil {
		return domain.CapabilityNone, fmt.Errorf("resolve capability: %w", err)
	}
	if !ok {
		return domain.CapabilityNone, nil
	}
	return domain.CapabilityFor(role), nil
}

// CanManage reports whether the actor is a manager of the project or an admin.
func (a *Authorizer) CanManage(ctx context.Context, actor domain.Actor, projectID string) (bool, error) {
	c, err := a.Resolve(ctx, actor, projectID)
	if err != nil {
		return false, err
	}
	return c.CanManage(), nil
}

// IsMember reports whether the actor has any capability on the project.
func (a *Authorizer) IsMember(ctx context.Context, actor domain.Actor, projectID string) (bool, error) {
	c, err := a.Resolve(ctx, actor, projectID)
	if err != nil {
		return false, err
	}
	return c.IsMember(), nil
}
