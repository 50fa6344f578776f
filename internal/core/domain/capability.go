package domain

// Capability is the effective permission level of an actor on one project.
// Values are ordered so checks can be written as comparisons.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityMember
	CapabilityManager
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityMember:
		return "MEMBER"
	case CapabilityManager:
		return "MANAGER"
	case CapabilityAdmin:
		return "ADMIN"
	default:
		return "NONE"
	}
}

// AtLeast reports whether c grants everything min grants.
func (c Capability) AtLeast(min Capability) bool {
	return c >= min
}

// CanManage is true for project managers and global admins.
func (c Capability) CanManage() bool {
	return c.AtLeast(CapabilityManager)
}

// IsMember is true for any capability other than none.
func (c Capability) IsMember() bool {
	return c.AtLeast(CapabilityMember)
}

// CapabilityFor maps a project role to its capability.
func CapabilityFor(role ProjectRole) Capability {
	switch role {
	case ProjectRoleManager:
		return CapabilityManager
	case ProjectRoleMember:
		return CapabilityMember
	default:
		return CapabilityNone
	}
}
