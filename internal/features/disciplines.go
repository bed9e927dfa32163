package features

import (
	"context"
	"time"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// Disciplines is reference data with a long TTL and no invalidating
// mutations.
type Disciplines struct {
	list querycache.ValueQuery[[]domain.Discipline]
}

func NewDisciplines(cache *querycache.Cache, client *upstream.DisciplinesClient, ttl time.Duration) *Disciplines {
	return &Disciplines{
		list: querycache.ValueQuery[[]domain.Discipline]{
			Cache: cache,
			Name:  "disciplines",
			Fetch: client.List,
			TTL:   ttl,
		},
	}
}

func (d *Disciplines) List(ctx context.Context) ([]domain.Discipline, error) {
	return d.list.Get(ctx)
}
