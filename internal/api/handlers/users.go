package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type UsersFeature interface {
	List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.User], error)
}

// UsersHandler serves the member picker: search with an optional
// includeOnlyRole filter, both carried as cache-key filters.
type UsersHandler struct {
	users UsersFeature
}

func NewUsersHandler(users UsersFeature) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load users")
		return
	}
	render.JSON(w, r, page)
}
