package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type TeamsFeature interface {
	List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Team], error)
	Get(ctx context.Context, id int64) (domain.Team, error)
	Create(ctx context.Context, body any) (domain.Team, error)
	Update(ctx context.Context, id int64, body any) (domain.Team, error)
	AddMember(ctx context.Context, teamID, userID int64) error
	RemoveMember(ctx context.Context, teamID, userID int64) error
}

type TeamsHandler struct {
	teams   TeamsFeature
	session Session
}

func NewTeamsHandler(teams TeamsFeature, session Session) *TeamsHandler {
	return &TeamsHandler{teams: teams, session: session}
}

func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.teams.List(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load teams")
		return
	}
	render.JSON(w, r, page)
}

func (h *TeamsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid team id", http.StatusBadRequest)
		return
	}

	team, err := h.teams.Get(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load team")
		return
	}
	render.JSON(w, r, team)
}

type TeamRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

func (h *TeamsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageTeams() {
		sendError(w, r, "forbidden", "only region administrators manage teams", http.StatusForbidden)
		return
	}

	var req TeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.teams.Create(r.Context(), req)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to create team")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, team)
}

func (h *TeamsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageTeams() {
		sendError(w, r, "forbidden", "only region administrators manage teams", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid team id", http.StatusBadRequest)
		return
	}

	var req TeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.teams.Update(r.Context(), id, req)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to update team")
		return
	}
	render.JSON(w, r, team)
}

type AddMemberRequest struct {
	UserID int64 `json:"userId" validate:"required,min=1"`
}

func (h *TeamsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageTeams() {
		sendError(w, r, "forbidden", "only region administrators manage teams", http.StatusForbidden)
		return
	}

	teamID, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid team id", http.StatusBadRequest)
		return
	}

	var req AddMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.teams.AddMember(r.Context(), teamID, req.UserID); err != nil {
		handleUpstreamError(w, r, err, "failed to add team member")
		return
	}
	render.NoContent(w, r)
}

func (h *TeamsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageTeams() {
		sendError(w, r, "forbidden", "only region administrators manage teams", http.StatusForbidden)
		return
	}

	teamID, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid team id", http.StatusBadRequest)
		return
	}
	userID, ok := urlID(r, "userId")
	if !ok {
		sendError(w, r, "validation_failed", "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.teams.RemoveMember(r.Context(), teamID, userID); err != nil {
		handleUpstreamError(w, r, err, "failed to remove team member")
		return
	}
	render.NoContent(w, r)
}
