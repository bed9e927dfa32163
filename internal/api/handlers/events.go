package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type EventsFeature interface {
	Requests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error)
	MyRequests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error)
	Published(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Event], error)
	Request(ctx context.Context, id int64) (domain.EventRequest, error)
	Create(ctx context.Context, body any) (domain.EventRequest, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64, comment string) error
}

type EventsHandler struct {
	events  EventsFeature
	session Session
}

func NewEventsHandler(events EventsFeature, session Session) *EventsHandler {
	return &EventsHandler{events: events, session: session}
}

func (h *EventsHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.events.Requests(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load event requests")
		return
	}
	render.JSON(w, r, page)
}

func (h *EventsHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.events.MyRequests(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load event requests")
		return
	}
	render.JSON(w, r, page)
}

func (h *EventsHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	page, err := h.events.Published(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load events")
		return
	}
	render.JSON(w, r, page)
}

func (h *EventsHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid request id", http.StatusBadRequest)
		return
	}

	req, err := h.events.Request(r.Context(), id)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load event request")
		return
	}
	render.JSON(w, r, req)
}

type CreateEventRequest struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Gender          string   `json:"gender" validate:"required,oneof=MALE FEMALE ANY"`
	MinAge          int      `json:"minAge" validate:"min=0"`
	MaxAge          int      `json:"maxAge" validate:"gtefield=MinAge"`
	Location        string   `json:"location" validate:"required,max=300"`
	DisciplineIDs   []int64  `json:"disciplineIds" validate:"required,min=1"`
	StartDate       string   `json:"startDate" validate:"required"`
	EndDate         string   `json:"endDate" validate:"required"`
	MaxParticipants int      `json:"maxParticipants" validate:"min=1"`
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanSubmitEventRequests() {
		sendError(w, r, "forbidden", "only region administrators submit event requests", http.StatusForbidden)
		return
	}

	var req CreateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.events.Create(r.Context(), req)
	if err != nil {
		handleUpstreamError(w, r, err, "failed to create event request")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

func (h *EventsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanModerateEventRequests() {
		sendError(w, r, "forbidden", "only federation administrators moderate requests", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid request id", http.StatusBadRequest)
		return
	}

	if err := h.events.Approve(r.Context(), id); err != nil {
		handleUpstreamError(w, r, err, "failed to approve event request")
		return
	}
	render.NoContent(w, r)
}

type RejectEventRequest struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

func (h *EventsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if !h.session.Role().CanModerateEventRequests() {
		sendError(w, r, "forbidden", "only federation administrators moderate requests", http.StatusForbidden)
		return
	}

	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid request id", http.StatusBadRequest)
		return
	}

	var req RejectEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.events.Reject(r.Context(), id, req.Comment); err != nil {
		handleUpstreamError(w, r, err, "failed to reject event request")
		return
	}
	render.NoContent(w, r)
}
