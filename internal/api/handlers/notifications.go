package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type NotificationsFeature interface {
	List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Notification], error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}

type NotificationsHandler struct {
	notifications NotificationsFeature
}

func NewNotificationsHandler(notifications NotificationsFeature) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.notifications.List(r.Context(), pageRequest(r))
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load notifications")
		return
	}
	render.JSON(w, r, page)
}

func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(r.Context())
	if err != nil {
		handleUpstreamError(w, r, err, "failed to load unread count")
		return
	}
	render.JSON(w, r, map[string]int64{"count": count})
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		sendError(w, r, "validation_failed", "invalid notification id", http.StatusBadRequest)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id); err != nil {
		handleUpstreamError(w, r, err, "failed to mark notification read")
		return
	}
	render.NoContent(w, r)
}

func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context()); err != nil {
		handleUpstreamError(w, r, err, "failed to mark notifications read")
		return
	}
	render.NoContent(w, r)
}
