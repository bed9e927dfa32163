package querycache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsp-platform/console-bff/internal/domain"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// pagedFetcher serves deterministic pages and counts every fetch.
type pagedFetcher struct {
	pages map[int]domain.Page[item]
	calls int
}

func (f *pagedFetcher) fetch(_ context.Context, req PageRequest) (domain.Page[item], error) {
	f.calls++
	p, ok := f.pages[req.Page]
	if !ok {
		return domain.Page[item]{Number: req.Page, Last: true}, nil
	}
	return p, nil
}

func makePage(page, count int, last bool) domain.Page[item] {
	p := domain.Page[item]{Number: page, Size: count, Last: last}
	for i := 0; i < count; i++ {
		id := int64(page*100 + i)
		p.Content = append(p.Content, item{ID: id, Name: fmt.Sprintf("item-%d", id)})
	}
	return p
}

func newListQuery(f *pagedFetcher, tags ...Tag) (*Cache, *ListQuery[item]) {
	c := New(NewMemoryStore(), time.Minute)
	return c, &ListQuery[item]{
		Cache: c,
		Name:  "test-items",
		Tags:  tags,
		Fetch: f.fetch,
	}
}

func TestListQuery_MergesPagesInOrder(t *testing.T) {
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{
		0: makePage(0, 3, false),
		1: makePage(1, 3, false),
		2: makePage(2, 2, true),
	}}
	_, q := newListQuery(f)

	var merged domain.Page[item]
	for page := 0; page <= 2; page++ {
		var err error
		merged, err = q.Get(ctx, PageRequest{Page: page, Size: 3})
		require.NoError(t, err)
	}

	require.Len(t, merged.Content, 8)
	assert.True(t, merged.Last)
	assert.Equal(t, 3, f.calls)

	// Concatenation order, no duplicates, no reordering.
	want := []int64{0, 1, 2, 100, 101, 102, 200, 201}
	for i, it := range merged.Content {
		assert.Equal(t, want[i], it.ID)
	}
}

func TestListQuery_PageZeroReplacesAccumulatedList(t *testing.T) {
	// A page-0 request after scrolling refetches and rebuilds the list from
	// scratch, without any invalidation in between.
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{
		0: makePage(0, 3, false),
		1: makePage(1, 3, true),
	}}
	_, q := newListQuery(f)

	_, err := q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	merged, err := q.Get(ctx, PageRequest{Page: 1})
	require.NoError(t, err)
	require.Len(t, merged.Content, 6)

	merged, err = q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, f.calls, "returning to page 0 issues a fresh request")
	require.Len(t, merged.Content, 3)
	for i, it := range merged.Content {
		assert.Equal(t, int64(i), it.ID)
	}

	// The rebuilt list keeps accumulating from there.
	merged, err = q.Get(ctx, PageRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, merged.Content, 6)
}

func TestListQuery_RepeatedPageServedFromCache(t *testing.T) {
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{
		0: makePage(0, 3, false),
		1: makePage(1, 3, true),
	}}
	_, q := newListQuery(f)

	for _, page := range []int{0, 1, 1, 1} {
		_, err := q.Get(ctx, PageRequest{Page: page})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, f.calls, "re-firing the current page is debounced")
}

func TestListQuery_ScrollPastLastPageIssuesNoRequest(t *testing.T) {
	// Page 0 returns 10 items and last=false; page 1 returns 7 with
	// last=true; later scroll triggers must not fetch anything.
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{
		0: makePage(0, 10, false),
		1: makePage(1, 7, true),
	}}
	_, q := newListQuery(f)

	_, err := q.Get(ctx, PageRequest{Page: 0, Size: 10})
	require.NoError(t, err)
	merged, err := q.Get(ctx, PageRequest{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, merged.Content, 17)

	merged, err = q.Get(ctx, PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, merged.Content, 17)

	assert.Equal(t, 2, f.calls)
}

func TestListQuery_EmptyPageZeroClearsList(t *testing.T) {
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{
		0: makePage(0, 3, false),
		1: makePage(1, 3, true),
	}}
	c, q := newListQuery(f, Tag("Item"))

	_, err := q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	_, err = q.Get(ctx, PageRequest{Page: 1})
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, Tag("Item")))
	f.pages[0] = domain.Page[item]{Number: 0, Last: true}

	merged, err := q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	assert.NotNil(t, merged.Content)
	assert.Empty(t, merged.Content)
}

func TestListQuery_DistinctFiltersDistinctEntries(t *testing.T) {
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}
	_, q := newListQuery(f)

	_, err := q.Get(ctx, PageRequest{Page: 0, Filters: map[string]string{"status": "PENDING"}})
	require.NoError(t, err)
	_, err = q.Get(ctx, PageRequest{Page: 0, Filters: map[string]string{"status": "APPROVED"}})
	require.NoError(t, err)
	_, err = q.Get(ctx, PageRequest{Page: 0, Filters: map[string]string{"status": "PENDING"}})
	require.NoError(t, err)

	assert.Equal(t, 2, f.calls, "one fetch per filter set")
}

func TestListQuery_MetadataAdoptedFromNewestPage(t *testing.T) {
	ctx := context.Background()
	p0 := makePage(0, 3, false)
	p0.TotalElements = 5
	p1 := makePage(1, 2, true)
	p1.TotalElements = 5
	f := &pagedFetcher{pages: map[int]domain.Page[item]{0: p0, 1: p1}}
	_, q := newListQuery(f)

	_, err := q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	merged, err := q.Get(ctx, PageRequest{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, merged.Number)
	assert.True(t, merged.Last)
	assert.Equal(t, int64(5), merged.TotalElements)
	assert.Len(t, merged.Content, 5)
}

func TestInvalidate_DropsOnlyTaggedEntries(t *testing.T) {
	ctx := context.Background()
	events := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}
	teams := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}

	c := New(NewMemoryStore(), time.Minute)
	eq := &ListQuery[item]{Cache: c, Name: "events", Tags: []Tag{Tag("Event")}, Fetch: events.fetch}
	tq := &ListQuery[item]{Cache: c, Name: "teams", Tags: []Tag{Tag("Team:LIST")}, Fetch: teams.fetch}

	_, err := eq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	_, err = tq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, Tag("Event")))

	_, err = eq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	_, err = tq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)

	assert.Equal(t, 2, events.calls, "events refetched after invalidation")
	assert.Equal(t, 1, teams.calls, "teams untouched")
}

func TestInvalidate_PrunesKeyRegistry(t *testing.T) {
	ctx := context.Background()
	events := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}
	teams := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}

	c := New(NewMemoryStore(), time.Minute)
	eq := &ListQuery[item]{Cache: c, Name: "events", Tags: []Tag{Tag("Event")}, Fetch: events.fetch}
	tq := &ListQuery[item]{Cache: c, Name: "teams", Tags: []Tag{Tag("Team:LIST")}, Fetch: teams.fetch}

	_, err := eq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	_, err = tq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)

	c.mu.Lock()
	require.Len(t, c.keys, 2)
	c.mu.Unlock()

	require.NoError(t, c.Invalidate(ctx, Tag("Event")))

	c.mu.Lock()
	assert.Len(t, c.keys, 1, "invalidated entries leave the key registry")
	c.mu.Unlock()
}

func TestSingleQuery_ItemTagInvalidation(t *testing.T) {
	ctx := context.Background()
	calls := map[int64]int{}

	c := New(NewMemoryStore(), time.Minute)
	q := &SingleQuery[item]{
		Cache: c,
		Name:  "team",
		Tags: func(id int64) []Tag {
			return []Tag{ItemTag("Team", id)}
		},
		Fetch: func(_ context.Context, id int64) (item, error) {
			calls[id]++
			return item{ID: id, Name: "team"}, nil
		},
	}

	for _, id := range []int64{7, 9, 7} {
		_, err := q.Get(ctx, id)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls[7])
	assert.Equal(t, 1, calls[9])

	require.NoError(t, c.Invalidate(ctx, ItemTag("Team", 7)))

	_, err := q.Get(ctx, 7)
	require.NoError(t, err)
	_, err = q.Get(ctx, 9)
	require.NoError(t, err)

	assert.Equal(t, 2, calls[7], "updated team refetched")
	assert.Equal(t, 1, calls[9], "other team untouched")
}

func TestValueQuery_CachesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	calls := 0

	c := New(NewMemoryStore(), time.Minute)
	q := &ValueQuery[int]{
		Cache: c,
		Name:  "unread-count",
		Tags:  []Tag{Tag("Notification")},
		Fetch: func(context.Context) (int, error) {
			calls++
			return 4, nil
		},
	}

	for i := 0; i < 3; i++ {
		n, err := q.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Invalidate(ctx, Tag("Notification")))
	_, err := q.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestListQuery_ItemTags(t *testing.T) {
	ctx := context.Background()
	f := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 2, true)}}

	c := New(NewMemoryStore(), time.Minute)
	q := &ListQuery[item]{
		Cache: c,
		Name:  "teams",
		Tags:  []Tag{Tag("Team:LIST")},
		ItemTags: func(it item) []Tag {
			return []Tag{ItemTag("Team", it.ID)}
		},
		Fetch: f.fetch,
	}

	_, err := q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)

	// A per-item invalidation drops the list that contained the item.
	require.NoError(t, c.Invalidate(ctx, ItemTag("Team", 1)))
	_, err = q.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
}

func TestReset_DropsEverything(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore(), time.Minute)

	lists := &pagedFetcher{pages: map[int]domain.Page[item]{0: makePage(0, 3, true)}}
	lq := &ListQuery[item]{Cache: c, Name: "events", Tags: []Tag{Tag("Event")}, Fetch: lists.fetch}

	values := 0
	vq := &ValueQuery[int]{
		Cache: c,
		Name:  "unread",
		Fetch: func(context.Context) (int, error) {
			values++
			return values, nil
		},
	}

	_, err := lq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	_, err = vq.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx))

	_, err = lq.Get(ctx, PageRequest{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, lists.calls, "list must refetch after reset")

	n, err := vq.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "untagged value entries are dropped too")
}
