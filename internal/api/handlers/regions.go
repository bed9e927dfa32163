package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type RegionsFeature interface {
	List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Region], error)
	Get(ctx context.Context, id int64) (domain.Region, error)
	Create(ctx context.Context, body any) (domain.Region, error)
	Update(ctx context.Context, id int64, body any) (domain.Region, error)
	Delete(ctx context.Context, id int64) error
}

type RegionsHandler struct {
	regions RegionsFeature
	session Session
}

func NewRegionsHandler(regions RegionsFeature, session Session) *RegionsHandler {
	return &RegionsHandler{regions: regions, session: session}
}

func (h *RegionsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.regions.List(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load regions")
		return
	}
	render.JSON(w, r, page)
}

func (h *RegionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid region id", http.StatusBadRequest)
		return
	}

	region, err := h.regions.Get(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load region")
		return
	}
	render.JSON(w, r, region)
}

type RegionRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=1000"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
}

func (h *RegionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageRegions() {
		sendError(w, r, "forbidden", "only federation administrators manage regions", http.StatusForbidden)
		return
	}

	var req RegionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	region, err := h.regions.Create(r.Context(), req)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to create region")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, region)
}

func (h *RegionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanEditRegion() {
		sendError(w, r, "forbidden", "insufficient role to edit regions", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid region id", http.StatusBadRequest)
		return
	}

	var req RegionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	region, err := h.regions.Update(r.Context(), id, req)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to update region")
		return
	}
	render.JSON(w, r, region)
}

func (h *RegionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanManageRegions() {
		sendError(w, r, "forbidden", "only federation administrators manage regions", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid region id", http.StatusBadRequest)
		return
	}

	if err := h.regions.Delete(r.Context(), id); err != nil {
		handleUpstreamError(w, r, err, "failed to delete region")
		return
	}
	render.NoContent(w, r)
}
