package domain

// Role is the closed set of roles the platform issues. Keeping it a named
// type (instead of comparing raw strings at call sites) means gating logic
// lives in one place and a typo fails to compile.
type Role string

const (
	RoleUser        Role = "USER"
	RoleRegionAdmin Role = "REGION_ADMIN"
	RoleFSPAdmin    Role = "FSP_ADMIN"
)

// ParseRole maps an API role string onto the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleRegionAdmin, RoleFSPAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// CanModerateEventRequests covers approve/reject of submitted requests.
func (r Role) CanModerateEventRequests() bool {
	return r == RoleFSPAdmin
}

// CanSubmitEventRequests covers creating new event requests.
func (r Role) CanSubmitEventRequests() bool {
	return r == RoleRegionAdmin
}

// CanManageRegions covers creating and deleting regional entities.
func (r Role) CanManageRegions() bool {
	return r == RoleFSPAdmin
}

// CanEditRegion covers updating an existing region's details.
func (r Role) CanEditRegion() bool {
	return r == RoleFSPAdmin || r == RoleRegionAdmin
}

// CanManageTeams covers creating teams and editing team membership.
func (r Role) CanManageTeams() bool {
	return r == RoleRegionAdmin
}

// CanManageProtocols covers uploading and deleting event protocol files.
func (r Role) CanManageProtocols() bool {
	return r == RoleFSPAdmin || r == RoleRegionAdmin
}

// CanProcessApplications covers approving or rejecting region membership
// applications.
func (r Role) CanProcessApplications() bool {
	return r == RoleRegionAdmin
}
