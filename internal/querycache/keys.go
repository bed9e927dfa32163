package querycache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// PageRequest is a page of a filtered list query. Filters hold the
// entity-specific params (status, search, regionId, ...) exactly as they go
// on the wire.
type PageRequest struct {
	Page      int
	Size      int
	Direction string
	Filters   map[string]string
}

// Fingerprint derives the cache key for a list query: the query name plus the
// filter params, with page and size excluded so every page of the same
// logical list lands in one entry. The canonical string is hashed the same
// way regardless of map iteration order.
func Fingerprint(name string, req PageRequest) string {
	parts := make([]string, 0, len(req.Filters)+1)
	parts = append(parts, "direction="+req.Direction)

	keys := make([]string, 0, len(req.Filters))
	for k := range req.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+req.Filters[k])
	}

	raw := name + "|" + strings.Join(parts, "|")
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("list:%s:%s", name, hex.EncodeToString(sum[:]))
}

func itemKey(name string, id int64) string {
	return fmt.Sprintf("%s:%d", name, id)
}

func valueKey(name string) string {
	return "value:" + name
}
