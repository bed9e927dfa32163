package domain

// RouteRule describes the gate on a single console route.
type RouteRule struct {
	Path         string
	RequireAuth  bool
	AllowedRoles []Role
}

// RouteDecision is the outcome of resolving a navigation against the session.
type RouteDecision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// ResolveRoute decides whether the current session may enter a route. It is a
// pure predicate over {isAuthenticated, role, allowedRoles}: no server
// round-trip happens here beyond the token presence already captured in the
// session state.
//
// An anonymous session hitting a protected route goes to the login entry
// point; an authenticated session with a role outside the allow-list goes to
// the default landing route.
func ResolveRoute(rule RouteRule, isAuthenticated bool, role Role) RouteDecision {
	if rule.RequireAuth && !isAuthenticated {
		return RouteDecision{
			Allowed:    false,
			RedirectTo: "/login",
			Reason:     "auth_required",
		}
	}

	if len(rule.AllowedRoles) > 0 {
		allowed := false
		for _, r := range rule.AllowedRoles {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return RouteDecision{
				Allowed:    false,
				RedirectTo: "/",
				Reason:     "role_not_allowed",
			}
		}
	}

	return RouteDecision{Allowed: true}
}
