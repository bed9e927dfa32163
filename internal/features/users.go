package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

const TagUser = querycache.Tag("User")

// Users serves the member picker search and profile updates.
type Users struct {
	client *upstream.AuthClient
	cache  *querycache.Cache

	list querycache.ListQuery[domain.User]
}

func NewUsers(cache *querycache.Cache, client *upstream.AuthClient) *Users {
	u := &Users{client: client, cache: cache}
	u.list = querycache.ListQuery[domain.User]{
		Cache: cache,
		Name:  "users",
		Tags:  []querycache.Tag{TagUser},
		Fetch: client.ListUsers,
	}
	return u
}

func (u *Users) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.User], error) {
	return u.list.Get(ctx, req)
}

func (u *Users) Update(ctx context.Context, id int64, body any) (domain.User, error) {
	updated, err := u.client.UpdateUser(ctx, id, body)
	if err != nil {
		return updated, err
	}
	return updated, u.cache.Invalidate(ctx, TagUser)
}
