package upstream

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
)

type DisciplinesClient struct {
	gw *Client
}

func NewDisciplinesClient(gw *Client) *DisciplinesClient {
	return &DisciplinesClient{gw: gw}
}

// List returns the discipline reference data. Not paginated: the set is
// small and static.
func (c *DisciplinesClient) List(ctx context.Context) ([]domain.Discipline, error) {
	return getJSON[[]domain.Discipline](ctx, c.gw, "/disciplines", nil)
}
