package features

import (
	"context"
	"fmt"

	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// TagProtocol scopes invalidation to one (event base, region) attachment.
func TagProtocol(eventBaseID, regionID int64) querycache.Tag {
	return querycache.Tag(fmt.Sprintf("Protocol:%d:%d", eventBaseID, regionID))
}

// Protocols caches the decoded file content per (event base, region) pair.
// Upload and delete invalidate the pair, so a fetch right after an upload
// always returns the new file.
type Protocols struct {
	client *upstream.ProtocolsClient
	cache  *querycache.Cache
}

func NewProtocols(cache *querycache.Cache, client *upstream.ProtocolsClient) *Protocols {
	return &Protocols{client: client, cache: cache}
}

func (p *Protocols) Fetch(ctx context.Context, eventBaseID, regionID int64) ([]byte, error) {
	q := querycache.ValueQuery[[]byte]{
		Cache: p.cache,
		Name:  fmt.Sprintf("protocol:%d:%d", eventBaseID, regionID),
		Tags:  []querycache.Tag{TagProtocol(eventBaseID, regionID)},
		Fetch: func(ctx context.Context) ([]byte, error) {
			return p.client.Fetch(ctx, eventBaseID, regionID)
		},
	}
	return q.Get(ctx)
}

func (p *Protocols) Upload(ctx context.Context, eventBaseID, regionID int64, filename string, content []byte) error {
	if err := p.client.Upload(ctx, eventBaseID, regionID, filename, content); err != nil {
		return err
	}
	return p.cache.Invalidate(ctx, TagProtocol(eventBaseID, regionID))
}

func (p *Protocols) Delete(ctx context.Context, eventBaseID, regionID int64) error {
	if err := p.client.Delete(ctx, eventBaseID, regionID); err != nil {
		return err
	}
	return p.cache.Invalidate(ctx, TagProtocol(eventBaseID, regionID))
}
