package features

import (
	"context"

	"github.com/fsp-platform/console-bff/internal/domain"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

// Teams is the one feature with per-item tags: roster edits on one team
// invalidate that team's record and the lists, not every other team.
const (
	TagTeamList = querycache.Tag("Team:LIST")
	teamKind    = "Team"
)

func TagTeam(id int64) querycache.Tag { return querycache.ItemTag(teamKind, id) }

type Teams struct {
	client *upstream.TeamsClient
	cache  *querycache.Cache

	list   querycache.ListQuery[domain.Team]
	single querycache.SingleQuery[domain.Team]
}

func NewTeams(cache *querycache.Cache, client *upstream.TeamsClient) *Teams {
	t := &Teams{client: client, cache: cache}
	t.list = querycache.ListQuery[domain.Team]{
		Cache: cache,
		Name:  "teams",
		Tags:  []querycache.Tag{TagTeamList},
		ItemTags: func(team domain.Team) []querycache.Tag {
			return []querycache.Tag{TagTeam(team.ID)}
		},
		Fetch: client.List,
	}
	t.single = querycache.SingleQuery[domain.Team]{
		Cache: cache,
		Name:  "team",
		Tags:  func(id int64) []querycache.Tag { return []querycache.Tag{TagTeam(id)} },
		Fetch: client.Get,
	}
	return t
}

func (t *Teams) List(ctx context.Context, req querycache.PageRequest) (domain.Page[domain.Team], error) {
	return t.list.Get(ctx, req)
}

func (t *Teams) Get(ctx context.Context, id int64) (domain.Team, error) {
	return t.single.Get(ctx, id)
}

func (t *Teams) Create(ctx context.Context, body any) (domain.Team, error) {
	created, err := t.client.Create(ctx, body)
	if err != nil {
		return created, err
	}
	return created, t.cache.Invalidate(ctx, TagTeamList)
}

func (t *Teams) Update(ctx context.Context, id int64, body any) (domain.Team, error) {
	updated, err := t.client.Update(ctx, id, body)
	if err != nil {
		return updated, err
	}
	return updated, t.cache.Invalidate(ctx, TagTeam(id), TagTeamList)
}

func (t *Teams) AddMember(ctx context.Context, teamID, userID int64) error {
	if err := t.client.AddMember(ctx, teamID, userID); err != nil {
		return err
	}
	return t.cache.Invalidate(ctx, TagTeam(teamID), TagTeamList)
}

func (t *Teams) RemoveMember(ctx context.Context, teamID, userID int64) error {
	if err := t.client.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	return t.cache.Invalidate(ctx, TagTeam(teamID), TagTeamList)
}
