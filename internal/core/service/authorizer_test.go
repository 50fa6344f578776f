package service

import (
	"context"
	"testing"

	"github.com/sgsm/taskboard/internal/core/domain"
)

func TestAuthorizer_Resolve(t *testing.T) {
	dir := newStubMemberDir()
	dir.put("u-man", "p1", domain.ProjectRoleManager)
	dir.put("u-mem", "p1", domain.ProjectRoleMember)
	authz := NewAuthorizer(dir)

	cases := []struct {
		name  string
		actor domain.Actor
		want  domain.Capability
	}{
		{"manager", domain.Actor{ID: "u-man", Role: domain.RoleUser}, domain.CapabilityManager},
		{"member", domain.Actor{ID: "u-mem", Role: domain.RoleUser}, domain.CapabilityMember},
		{"outsider", domain.Actor{ID: "u-out", Role: domain.RoleUser}, domain.CapabilityNone},
		{"admin", domain.Actor{ID: "u-adm", Role: domain.RoleAdmin}, domain.CapabilityAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authz.Resolve(context.Background(), tc.actor, "p1")
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestAuthorizer_AdminSkipsDirectory(t *testing.T) {
	dir := newStubMemberDir()
	authz := NewAuthorizer(dir)

	ok, err := authz.CanManage(context.Background(), domain.Actor{ID: "root", Role: domain.RoleAdmin}, "any")
	if err != nil || !ok {
		t.Fatalf("expected admin to manage, got %v %v", ok, err)
	}
	if dir.lookups != 0 {
		t.Fatalf("expected no membership lookups, got %d", dir.lookups)
	}
}

func TestAuthorizer_MemberCannotManage(t *testing.T) {
	dir := newStubMemberDir()
	dir.put("u-mem", "p1", domain.ProjectRoleMember)
	authz := NewAuthorizer(dir)
	actor := domain.Actor{ID: "u-mem", Role: domain.RoleUser}

	canManage, err := authz.CanManage(context.Background(), actor, "p1")
	if err != nil || canManage {
		t.Fatalf("member must not manage: %v %v", canManage, err)
	}
	isMember, err := authz.IsMember(context.Background(), actor, "p1")
	if err != nil || !isMember {
		t.Fatalf("member must be a member: %v %v", isMember, err)
	}
	isMember, _ = authz.IsMember(context.Background(), actor, "p2")
	if isMember {
		t.Fatalf("membership must be per project")
	}
}
