package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoute(t *testing.T) {
	protected := RouteRule{Path: "/events", RequireAuth: true}
	adminOnly := RouteRule{
		Path:         "/regions",
		RequireAuth:  true,
		AllowedRoles: []Role{RoleFSPAdmin, RoleRegionAdmin},
	}
	public := RouteRule{Path: "/login"}

	t.Run("Anonymous On Protected Route", func(t *testing.T) {
		d := ResolveRoute(protected, false, "")
		assert.False(t, d.Allowed)
		assert.Equal(t, "/login", d.RedirectTo)
		assert.Equal(t, "auth_required", d.Reason)
	})

	t.Run("Authenticated On Protected Route", func(t *testing.T) {
		d := ResolveRoute(protected, true, RoleUser)
		assert.True(t, d.Allowed)
		assert.Empty(t, d.RedirectTo)
	})

	t.Run("Role Outside Allow List", func(t *testing.T) {
		d := ResolveRoute(adminOnly, true, RoleUser)
		assert.False(t, d.Allowed)
		assert.Equal(t, "/", d.RedirectTo)
		assert.Equal(t, "role_not_allowed", d.Reason)
	})

	t.Run("Role Inside Allow List", func(t *testing.T) {
		d := ResolveRoute(adminOnly, true, RoleRegionAdmin)
		assert.True(t, d.Allowed)
	})

	t.Run("Anonymous On Public Route", func(t *testing.T) {
		d := ResolveRoute(public, false, "")
		assert.True(t, d.Allowed)
	})

	t.Run("Auth Checked Before Roles", func(t *testing.T) {
		d := ResolveRoute(adminOnly, false, "")
		assert.Equal(t, "/login", d.RedirectTo)
	})
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"USER", "REGION_ADMIN", "FSP_ADMIN"} {
		r, ok := ParseRole(s)
		assert.True(t, ok, s)
		assert.True(t, r.Valid())
	}

	_, ok := ParseRole("SUPER_ADMIN")
	assert.False(t, ok)
	assert.False(t, Role("admin").Valid())
}

func TestRoleGates(t *testing.T) {
	assert.True(t, RoleFSPAdmin.CanModerateEventRequests())
	assert.False(t, RoleRegionAdmin.CanModerateEventRequests())
	assert.False(t, RoleUser.CanModerateEventRequests())

	assert.True(t, RoleRegionAdmin.CanSubmitEventRequests())
	assert.False(t, RoleFSPAdmin.CanSubmitEventRequests())

	assert.True(t, RoleFSPAdmin.CanManageRegions())
	assert.True(t, RoleRegionAdmin.CanEditRegion())
	assert.False(t, RoleUser.CanEditRegion())

	assert.True(t, RoleRegionAdmin.CanManageTeams())
	assert.False(t, RoleUser.CanManageTeams())

	assert.True(t, RoleFSPAdmin.CanManageProtocols())
	assert.False(t, RoleUser.CanManageProtocols())

	assert.True(t, RoleRegionAdmin.CanProcessApplications())
	assert.False(t, RoleFSPAdmin.CanProcessApplications())
}
