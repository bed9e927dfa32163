package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type NotificationsClient struct {
	gw *Client
}

func NewNotificationsClient(gw *Client) *NotificationsClient {
	return &NotificationsClient{gw: gw}
}

func (c *NotificationsClient) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Notification], error) {
	return getJSON[domain.Page[domain.Notification]](ctx, c.gw, "/notifications", pageQuery(req))
}

func (c *NotificationsClient) UnreadCount(ctx context.Context) (int64, error) {
	return getJSON[int64](ctx, c.gw, "/notifications/unread-count", nil)
}

func (c *NotificationsClient) MarkRead(ctx context.Context, id int64) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPatch, fmt.Sprintf("/notifications/%d/mark-read", id), nil)
	return err
}

func (c *NotificationsClient) MarkAllRead(ctx context.Context) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPatch, "/notifications/mark-all-read", nil)
	return err
}
