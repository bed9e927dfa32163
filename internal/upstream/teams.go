package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
)

type TeamsClient struct {
	gw *Client
}

func NewTeamsClient(gw *Client) *TeamsClient {
	return &TeamsClient{gw: gw}
}

func (c *TeamsClient) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Team], error) {
	return getJSON[domain.Page[domain.Team]](ctx, c.gw, "/teams", pageQuery(req))
}

func (c *TeamsClient) Get(ctx context.Context, id int64) (domain.Team, error) {
	return getJSON[domain.Team](ctx, c.gw, fmt.Sprintf("/teams/%d", id), nil)
}

func (c *TeamsClient) Create(ctx context.Context, body any) (domain.Team, error) {
	return writeJSON[domain.Team](ctx, c.gw, http.MethodPost, "/teams", body)
}

func (c *TeamsClient) Update(ctx context.Context, id int64, body any) (domain.Team, error) {
	return writeJSON[domain.Team](ctx, c.gw, http.MethodPut, fmt.Sprintf("/teams/%d", id), body)
}

func (c *TeamsClient) AddMember(ctx context.Context, teamID, userID int64) error {
	body := map[string]int64{"userId": userID}
	_, err := writeJSON[struct{}](ctx, c.gw, http.MethodPost, fmt.Sprintf("/teams/%d/members", teamID), body)
	return err
}

func (c *TeamsClient) RemoveMember(ctx context.Context, teamID, userID int64) error {
	return c.gw.delete(ctx, fmt.Sprintf("/teams/%d/members/%d", teamID, userID))
}
