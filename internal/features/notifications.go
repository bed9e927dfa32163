package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

const TagNotification = querycache.Tag("Notification")

// Notifications caches the inbox list together with the unread badge count;
// marking anything read drops both so the badge never goes stale against the
// list.
type Notifications struct {
	client *upstream.NotificationsClient
	cache  *querycache.Cache

	list   querycache.ListQuery[domain.Notification]
	unread querycache.ValueQuery[int64]
}

func NewNotifications(cache *querycache.Cache, client *upstream.NotificationsClient) *Notifications {
	n := &Notifications{client: client, cache: cache}
	n.list = querycache.ListQuery[domain.Notification]{
		Cache: cache,
		Name:  "notifications",
		Tags:  []querycache.Tag{TagNotification},
		Fetch: client.List,
	}
	n.unread = querycache.ValueQuery[int64]{
		Cache: cache,
		Name:  "notifications-unread",
		Tags:  []querycache.Tag{TagNotification},
		Fetch: client.UnreadCount,
	}
	return n
}

func (n *Notifications) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Notification], error) {
	return n.list.Get(ctx, req)
}

func (n *Notifications) UnreadCount(ctx context.Context) (int64, error) {
	return n.unread.Get(ctx)
}

func (n *Notifications) MarkRead(ctx context.Context, id int64) error {
	if err := n.client.MarkRead(ctx, id); err != nil {
		return err
	}
	return n.cache.Invalidate(ctx, TagNotification)
}

func (n *Notifications) MarkAllRead(ctx context.Context) error {
	if err := n.client.MarkAllRead(ctx); err != nil {
		return err
	}
	return n.cache.Invalidate(ctx, TagNotification)
}
