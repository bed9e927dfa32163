package querycache

import (
	"context"
	"strconv"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/fsp-platform/console-bff/internal/domain"
)

// Tag labels a cached read so mutations can name what they made stale.
// Collection tags ("Event", "Team:LIST") cover whole lists; item tags
// ("Team:7") cover one record, so updating a single team does not have to
// drop every team list.
type Tag string

func ItemTag(kind string, id int64) Tag {
	return Tag(kind + ":" + strconv.FormatInt(id, 10))
}

// Cache is the shared query cache: a byte store plus a process-local tag
// index and the per-list pagination bookkeeping. It is the only shared
// mutable resource in the console; every write goes through Invalidate.
type Cache struct {
	store      Store
	defaultTTL time.Duration

	mu        sync.Mutex
	keys      map[string]struct{}
	keysByTag map[Tag]map[string]struct{}
	lists     map[string]*listState
}

// listState remembers the fetch progress of a merged list. A fetch happens
// only when the requested page differs from the previously issued one, so a
// re-fired scroll trigger for the same page is debounced while a page-0
// request after accumulation refetches and rebuilds the list.
type listState struct {
	lastPage int
	highest  int
	last     bool
	inflight map[int]chan struct{}
}

func New(store Store, defaultTTL time.Duration) *Cache {
	return &Cache{
		store:      store,
		defaultTTL: defaultTTL,
		keys:       make(map[string]struct{}),
		keysByTag:  make(map[Tag]map[string]struct{}),
		lists:      make(map[string]*listState),
	}
}

// Invalidate drops every cached entry holding any of the given tags. Entries
// are refetched lazily on the next read; nothing is fetched eagerly here.
func (c *Cache) Invalidate(ctx context.Context, tags ...Tag) error {
	c.mu.Lock()
	seen := make(map[string]struct{})
	for _, t := range tags {
		for key := range c.keysByTag[t] {
			seen[key] = struct{}{}
		}
		delete(c.keysByTag, t)
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
		delete(c.keys, key)
		c.resetListLocked(key)
	}
	c.mu.Unlock()

	if len(keys) == 0 {
		return nil
	}
	return c.store.Delete(ctx, keys...)
}

func (c *Cache) listState(key string) *listState {
	st, ok := c.lists[key]
	if !ok {
		st = &listState{
			lastPage: -1,
			highest:  -1,
			inflight: make(map[int]chan struct{}),
		}
		c.lists[key] = st
	}
	return st
}

// resetListLocked forgets fetch progress but keeps in-flight markers so a
// concurrent fetch still wakes its waiters.
func (c *Cache) resetListLocked(key string) {
	st, ok := c.lists[key]
	if !ok {
		return
	}
	st.lastPage = -1
	st.highest = -1
	st.last = false
}

// Reset drops everything the cache has ever written. Runs on login and
// logout: a session change must not serve one user's cached reads to the
// next.
func (c *Cache) Reset(ctx context.Context) error {
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for key := range c.keys {
		keys = append(keys, key)
	}
	c.keys = make(map[string]struct{})
	c.keysByTag = make(map[Tag]map[string]struct{})
	for key := range c.lists {
		c.resetListLocked(key)
	}
	c.mu.Unlock()

	if len(keys) == 0 {
		return nil
	}
	return c.store.Delete(ctx, keys...)
}

func (c *Cache) registerTagsLocked(key string, tags []Tag) {
	c.keys[key] = struct{}{}
	for _, t := range tags {
		set, ok := c.keysByTag[t]
		if !ok {
			set = make(map[string]struct{})
			c.keysByTag[t] = set
		}
		set[key] = struct{}{}
	}
}

func (c *Cache) ttl(override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return c.defaultTTL
}

// ListQuery is a paginated read declaration: where its pages come from, what
// tags the merged result provides, and under which name it caches.
type ListQuery[T any] struct {
	Cache *Cache
	Name  string
	Tags  []Tag
	// ItemTags, when set, adds per-item tags from each element of the merged
	// list.
	ItemTags func(T) []Tag
	Fetch    func(ctx context.Context, req PageRequest) (domain.Page[T], error)
	TTL      time.Duration
}

// Get returns the merged list for the request's filter set, fetching only
// when the requested page differs from the previously issued one for that
// set.
//
// Merge rule: page 0 replaces the cached list (filter changes and refresh);
// page N>0 appends in arrival order and adopts the new page's metadata. A
// repeat of the previous page serves from cache, and once the server
// reported the last page, requests past it serve from cache without a fetch.
func (q *ListQuery[T]) Get(ctx context.Context, req PageRequest) (domain.Page[T], error) {
	var zero domain.Page[T]
	c := q.Cache
	key := Fingerprint(q.Name, req)

	for {
		c.mu.Lock()
		st := c.listState(key)

		if (st.lastPage >= 0 && req.Page == st.lastPage) || (st.last && req.Page > st.highest) {
			c.mu.Unlock()

			var cached domain.Page[T]
			found, err := c.store.Get(ctx, key, &cached)
			if err != nil {
				zlog.Warn().Err(err).Str("key", key).Msg("cache list get failed")
			}
			if found {
				return cached, nil
			}

			// Entry evicted underneath us (TTL or external flush): forget
			// the fetch progress and rebuild from this page.
			c.mu.Lock()
			c.resetListLocked(key)
			c.mu.Unlock()
			continue
		}

		if ch, ok := st.inflight[req.Page]; ok {
			c.mu.Unlock()
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		ch := make(chan struct{})
		st.inflight[req.Page] = ch
		c.mu.Unlock()

		merged, err := q.fetchAndMerge(ctx, key, req)

		c.mu.Lock()
		st = c.listState(key)
		delete(st.inflight, req.Page)
		if err == nil {
			st.lastPage = req.Page
			if req.Page == 0 {
				st.highest = 0
			} else if req.Page > st.highest {
				st.highest = req.Page
			}
			st.last = merged.Last
			c.registerTagsLocked(key, q.tagsFor(merged))
		}
		c.mu.Unlock()
		close(ch)

		return merged, err
	}
}

func (q *ListQuery[T]) fetchAndMerge(ctx context.Context, key string, req PageRequest) (domain.Page[T], error) {
	c := q.Cache

	fresh, err := q.Fetch(ctx, req)
	if err != nil {
		return domain.Page[T]{}, err
	}
	if fresh.Content == nil {
		fresh.Content = []T{}
	}

	merged := fresh
	if req.Page > 0 {
		var cached domain.Page[T]
		if found, _ := c.store.Get(ctx, key, &cached); found {
			content := make([]T, 0, len(cached.Content)+len(fresh.Content))
			content = append(content, cached.Content...)
			content = append(content, fresh.Content...)
			merged.Content = content
		}
	}

	if err := c.store.Set(ctx, key, merged, c.ttl(q.TTL)); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache list set failed")
	}
	return merged, nil
}

func (q *ListQuery[T]) tagsFor(page domain.Page[T]) []Tag {
	if q.ItemTags == nil {
		return q.Tags
	}
	tags := make([]Tag, 0, len(q.Tags)+len(page.Content))
	tags = append(tags, q.Tags...)
	for _, item := range page.Content {
		tags = append(tags, q.ItemTags(item)...)
	}
	return tags
}

// SingleQuery caches one record per id.
type SingleQuery[T any] struct {
	Cache *Cache
	Name  string
	Tags  func(id int64) []Tag
	Fetch func(ctx context.Context, id int64) (T, error)
	TTL   time.Duration
}

func (q *SingleQuery[T]) Get(ctx context.Context, id int64) (T, error) {
	c := q.Cache
	key := itemKey(q.Name, id)

	var cached T
	found, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	if found {
		return cached, nil
	}

	fresh, err := q.Fetch(ctx, id)
	if err != nil {
		return cached, err
	}

	if err := c.store.Set(ctx, key, fresh, c.ttl(q.TTL)); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	tags := []Tag(nil)
	if q.Tags != nil {
		tags = q.Tags(id)
	}
	c.mu.Lock()
	c.registerTagsLocked(key, tags)
	c.mu.Unlock()
	return fresh, nil
}

// ValueQuery caches a single unparameterised value, e.g. the unread
// notification count or the discipline reference list.
type ValueQuery[T any] struct {
	Cache *Cache
	Name  string
	Tags  []Tag
	Fetch func(ctx context.Context) (T, error)
	TTL   time.Duration
}

func (q *ValueQuery[T]) Get(ctx context.Context) (T, error) {
	c := q.Cache
	key := valueKey(q.Name)

	var cached T
	found, err := c.store.Get(ctx, key, &cached)
	if err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	if found {
		return cached, nil
	}

	fresh, err := q.Fetch(ctx)
	if err != nil {
		return cached, err
	}

	if err := c.store.Set(ctx, key, fresh, c.ttl(q.TTL)); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	c.mu.Lock()
	c.registerTagsLocked(key, q.Tags)
	c.mu.Unlock()
	return fresh, nil
}
