package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

// ApplicationsClient wraps the region-application endpoints: users apply to
// join a region, region admins process the applications.
type ApplicationsClient struct {
	gw *Client
}

func NewApplicationsClient(gw *Client) *ApplicationsClient {
	return &ApplicationsClient{gw: gw}
}

func (c *ApplicationsClient) ListMine(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error) {
	return getJSON[domain.Page[domain.RegionApplication]](ctx, c.gw, "/region-applications/my", pageQuery(req))
}

func (c *ApplicationsClient) ListForRegion(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error) {
	return getJSON[domain.Page[domain.RegionApplication]](ctx, c.gw, "/region-applications/region", pageQuery(req))
}

func (c *ApplicationsClient) Get(ctx context.Context, id int64) (domain.RegionApplication, error) {
	return getJSON[domain.RegionApplication](ctx, c.gw, fmt.Sprintf("/region-applications/%d", id), nil)
}

func (c *ApplicationsClient) Create(ctx context.Context, body any) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, "/region-applications", body)
	return err
}

func (c *ApplicationsClient) Process(ctx context.Context, id int64, body any) error {
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPut, fmt.Sprintf("/region-applications/%d/process", id), body)
	return err
}
