package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
)

// PageHandler resolves console navigation against the session. A blocked
// navigation answers with a redirect instead of an error page, the same way
// the console's route guard behaves.
type PageHandler struct {
	session Session
}

func NewPageHandler(session Session) *PageHandler {
	return &PageHandler{session: session}
}

type pageView struct {
	Route         string       `json:"route"`
	Theme         string       `json:"theme"`
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

// Serve builds the handler for one gated route.
func (h *PageHandler) Serve(rule domain.RouteRule) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := domain.ResolveRoute(rule, h.session.IsAuthenticated(), h.session.Role())
		if !decision.Allowed {
			http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
			return
		}

		view := pageView{
			Route:         rule.Path,
			Theme:         h.session.Theme(),
			Authenticated: h.session.IsAuthenticated(),
		}
		if user, ok := h.session.User(); ok {
			view.User = &user
		}
		render.JSON(w, r, view)
	}
}

// NotFound redirects unknown routes to the landing page; unknown API paths
// still get a JSON 404.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if len(r.URL.Path) >= 5 && r.URL.Path[:5] == "/api/" {
		sendError(w, r, "resource_not_found", "unknown endpoint", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
