package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// TagEvent covers every event-request and published-event read. Event
// moderation changes both views at once (an approved request becomes an
// event), so they share one collection tag.
const TagEvent = querycache.Tag("Event")

// Events serves the moderation queue and the published calendar.
type Events struct {
	client *upstream.EventsClient
	cache  *querycache.Cache

	requests   querycache.ListQuery[domain.EventRequest]
	myRequests querycache.ListQuery[domain.EventRequest]
	published  querycache.ListQuery[domain.Event]
	request    querycache.SingleQuery[domain.EventRequest]
}

func NewEvents(cache *querycache.Cache, client *upstream.EventsClient) *Events {
	e := &Events{client: client, cache: cache}
	e.requests = querycache.ListQuery[domain.EventRequest]{
		Cache: cache,
		Name:  "event-requests",
		Tags:  []querycache.Tag{TagEvent},
		Fetch: client.ListRequests,
	}
	e.myRequests = querycache.ListQuery[domain.EventRequest]{
		Cache: cache,
		Name:  "event-requests-my",
		Tags:  []querycache.Tag{TagEvent},
		Fetch: client.ListMyRequests,
	}
	e.published = querycache.ListQuery[domain.Event]{
		Cache: cache,
		Name:  "events",
		Tags:  []querycache.Tag{TagEvent},
		Fetch: client.ListEvents,
	}
	e.request = querycache.SingleQuery[domain.EventRequest]{
		Cache: cache,
		Name:  "event-request",
		Tags:  func(int64) []querycache.Tag { return []querycache.Tag{TagEvent} },
		Fetch: client.GetRequest,
	}
	return e
}

func (e *Events) Requests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	return e.requests.Get(ctx, req)
}

func (e *Events) MyRequests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	return e.myRequests.Get(ctx, req)
}

func (e *Events) Published(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Event], error) {
	return e.published.Get(ctx, req)
}

func (e *Events) Request(ctx context.Context, id int64) (domain.EventRequest, error) {
	return e.request.Get(ctx, id)
}

func (e *Events) Create(ctx context.Context, body any) (domain.EventRequest, error) {
	created, err := e.client.CreateRequest(ctx, body)
	if err != nil {
		return created, err
	}
	return created, e.cache.Invalidate(ctx, TagEvent)
}

func (e *Events) Approve(ctx context.Context, id int64) error {
	if err := e.client.ApproveRequest(ctx, id); err != nil {
		return err
	}
	return e.cache.Invalidate(ctx, TagEvent)
}

func (e *Events) Reject(ctx context.Context, id int64, comment string) error {
	if err := e.client.RejectRequest(ctx, id, comment); err != nil {
		return err
	}
	return e.cache.Invalidate(ctx, TagEvent)
}
