package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

// EventsClient wraps the event-request and event endpoints.
type EventsClient struct {
	gw *Client
}

func NewEventsClient(gw *Client) *EventsClient {
	return &EventsClient{gw: gw}
}

func (c *EventsClient) ListRequests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	return getJSON[domain.Page[domain.EventRequest]](ctx, c.gw, "/event-requests", pageQuery(req))
}

func (c *EventsClient) ListMyRequests(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.EventRequest], error) {
	return getJSON[domain.Page[domain.EventRequest]](ctx, c.gw, "/event-requests/my", pageQuery(req))
}

func (c *EventsClient) GetRequest(ctx context.Context, id int64) (domain.EventRequest, error) {
	return getJSON[domain.EventRequest](ctx, c.gw, fmt.Sprintf("/event-requests/%d", id), nil)
}

func (c *EventsClient) CreateRequest(ctx context.Context, body any) (domain.EventRequest, error) {
	return writeJSON[domain.EventRequest](ctx, c.gw, http.MethodPost, "/event-requests", body)
}

// ApproveRequest moves a pending request to APPROVED. Terminal: the server
// rejects further transitions.
func (c *EventsClient) ApproveRequest(ctx context.Context, id int64) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, fmt.Sprintf("/event-requests/%d/approve", id), nil)
	return err
}

// RejectRequest moves a pending request to REJECTED with a moderation
// comment.
func (c *EventsClient) RejectRequest(ctx context.Context, id int64, comment string) error {
	body := map[string]string{"comment": comment}
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, fmt.Sprintf("/event-requests/%d/reject", id), body)
	return err
}

func (c *EventsClient) ListEvents(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Event], error) {
	return getJSON[domain.Page[domain.Event]](ctx, c.gw, "/events", pageQuery(req))
}
