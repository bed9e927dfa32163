package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// Applications serves the join-a-region workflow. Its reads share TagRegion:
// processing an application changes the region roster, so both go stale
// together.
type Applications struct {
	client *upstream.ApplicationsClient
	cache  *querycache.Cache

	mine      querycache.ListQuery[domain.RegionApplication]
	forRegion querycache.ListQuery[domain.RegionApplication]
	single    querycache.SingleQuery[domain.RegionApplication]
}

func NewApplications(cache *querycache.Cache, client *upstream.ApplicationsClient) *Applications {
	a := &Applications{client: client, cache: cache}
	a.mine = querycache.ListQuery[domain.RegionApplication]{
		Cache: cache,
		Name:  "region-applications-my",
		Tags:  []querycache.Tag{TagRegion},
		Fetch: client.ListMine,
	}
	a.forRegion = querycache.ListQuery[domain.RegionApplication]{
		Cache: cache,
		Name:  "region-applications-region",
		Tags:  []querycache.Tag{TagRegion},
		Fetch: client.ListForRegion,
	}
	a.single = querycache.SingleQuery[domain.RegionApplication]{
		Cache: cache,
		Name:  "region-application",
		Tags:  func(int64) []querycache.Tag { return []querycache.Tag{TagRegion} },
		Fetch: client.Get,
	}
	return a
}

func (a *Applications) Mine(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error) {
	return a.mine.Get(ctx, req)
}

func (a *Applications) ForRegion(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.RegionApplication], error) {
	return a.forRegion.Get(ctx, req)
}

func (a *Applications) Get(ctx context.Context, id int64) (domain.RegionApplication, error) {
	return a.single.Get(ctx, id)
}

func (a *Applications) Create(ctx context.Context, body any) error {
	if err := a.client.Create(ctx, body); err != nil {
		return err
	}
	return a.cache.Invalidate(ctx, TagRegion)
}

func (a *Applications) Process(ctx context.Context, id int64, body any) error {
	if err := a.client.Process(ctx, id, body); err != nil {
		return err
	}
	return a.cache.Invalidate(ctx, TagRegion)
}
