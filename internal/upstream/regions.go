package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type RegionsClient struct {
	gw *Client
}

func NewRegionsClient(gw *Client) *RegionsClient {
	return &RegionsClient{gw: gw}
}

func (c *RegionsClient) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Region], error) {
	return getJSON[domain.Page[domain.Region]](ctx, c.gw, "/regions", pageQuery(req))
}

func (c *RegionsClient) Get(ctx context.Context, id int64) (domain.Region, error) {
	return getJSON[domain.Region](ctx, c.gw, fmt.Sprintf("/regions/%d", id), nil)
}

func (c *RegionsClient) Create(ctx context.Context, body any) (domain.Region, error) {
	return writeJSON[domain.Region](ctx, c.gw, http.MethodPost, "/regions", body)
}

func (c *RegionsClient) Update(ctx context.Context, id int64, body any) (domain.Region, error) {
	return writeJSON[domain.Region](ctx, c.gw, http.MethodPut, fmt.Sprintf("/regions/%d", id), body)
}

func (c *RegionsClient) Delete(ctx context.Context, id int64) error {
	return c.gw.delete(ctx, fmt.Sprintf("/regions/%d", id))
}
