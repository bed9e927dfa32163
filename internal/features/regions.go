package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// TagRegion covers region reads and, following the platform's API, the
// region-application lists too: processing an application changes the
// region's member set.
const TagRegion = querycache.Tag("Region")

type Regions struct {
	client *upstream.RegionsClient
	cache  *querycache.Cache

	list   querycache.ListQuery[domain.Region]
	single querycache.SingleQuery[domain.Region]
}

func NewRegions(cache *querycache.Cache, client *upstream.RegionsClient) *Regions {
	r := &Regions{client: client, cache: cache}
	r.list = querycache.ListQuery[domain.Region]{
		Cache: cache,
		Name:  "regions",
		Tags:  []querycache.Tag{TagRegion},
		Fetch: client.List,
	}
	r.single = querycache.SingleQuery[domain.Region]{
		Cache: cache,
		Name:  "region",
		Tags:  func(int64) []querycache.Tag { return []querycache.Tag{TagRegion} },
		Fetch: client.Get,
	}
	return r
}

func (r *Regions) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Region], error) {
	return r.list.Get(ctx, req)
}

func (r *Regions) Get(ctx context.Context, id int64) (domain.Region, error) {
	return r.single.Get(ctx, id)
}

func (r *Regions) Create(ctx context.Context, body any) (domain.Region, error) {
	created, err := r.client.Create(ctx, body)
	if err != nil {
		return created, err
	}
	return created, r.cache.Invalidate(ctx, TagRegion)
}

func (r *Regions) Update(ctx context.Context, id int64, body any) (domain.Region, error) {
	updated, err := r.client.Update(ctx, id, body)
	if err != nil {
		return updated, err
	}
	return updated, r.cache.Invalidate(ctx, TagRegion)
}

func (r *Regions) Delete(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, id); err != nil {
		return err
	}
	return r.cache.Invalidate(ctx, TagRegion)
}
