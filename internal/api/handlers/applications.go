package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type ApplicationsFeature interface {
	Mine(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error)
	ForRegion(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error)
	Get(ctx context.Context, id int64) (domain.RegionApplication, error)
	Create(ctx context.Context, body any) error
	Process(ctx context.Context, id int64, body any) error
}

type ApplicationsHandler struct {
	applications ApplicationsFeature
	session      Session
}

func NewApplicationsHandler(applications ApplicationsFeature, session Session) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, session: session}
}

func (h *ApplicationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	page, err := h.applications.Mine(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load applications")
		return
	}
	render.JSON(w, r, page)
}

func (h *ApplicationsHandler) ForRegion(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanProcessApplications() {
		sendError(w, r, "forbidden", "only region administrators review applications", http.StatusForbidden)
		return
	}

	page, err := h.applications.ForRegion(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load applications")
		return
	}
	render.JSON(w, r, page)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid application id", http.StatusBadRequest)
		return
	}

	app, err := h.applications.Get(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load application")
		return
	}
	render.JSON(w, r, app)
}

type CreateApplicationRequest struct {
	RegionID    int64  `json:"regionId" validate:"required,min=1"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.applications.Create(r.Context(), req); err != nil {
		handleUpstreamError(w, r, err, "failed to submit application")
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"status": "submitted"})
}

type ProcessApplicationRequest struct {
	Status          string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	ResponseMessage string `json:"responseMessage" validate:"max=500"`
}

func (h *ApplicationsHandler) Process(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanProcessApplications() {
		sendError(w, r, "forbidden", "only region administrators review applications", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid application id", http.StatusBadRequest)
		return
	}

	var req ProcessApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.applications.Process(r.Context(), id, req); err != nil {
		handleUpstreamError(w, r, err, "failed to process application")
		return
	}
	render.NoContent(w, r)
}
