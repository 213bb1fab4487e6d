// Package cache memoizes external search calls so identical queries within
// the TTL window hit a metered upstream API exactly once.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

// Fingerprint is a normalized, order-independent encoding of a search query.
// Two queries that differ only in list order or casing share a fingerprint.
type Fingerprint struct {
	Cities         []string
	Keywords       []string
	Providers      []string
	SplitCities    bool
	SplitProviders bool
}

// normalizeList lowercases, trims, sorts, and dedups a term list.
func normalizeList(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Key returns the stable cache key for the fingerprint.
func (f Fingerprint) Key() string {
	canonical := struct {
		Cities         []string `json:"cities"`
		Keywords       []string `json:"keywords"`
		Providers      []string `json:"providers"`
		SplitCities    bool     `json:"split_cities"`
		SplitProviders bool     `json:"split_providers"`
	}{
		Cities:         normalizeList(f.Cities),
		Keywords:       normalizeList(f.Keywords),
		Providers:      normalizeList(f.Providers),
		SplitCities:    f.SplitCities,
		SplitProviders: f.SplitProviders,
	}
	raw, _ := json.Marshal(canonical)
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

type entry[T any] struct {
	payload  T
	storedAt time.Time
}

// Cache is a process-scoped TTL cache over search payloads. Entries are
// immutable once written; a single mutex guards the map.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	now     func() time.Time
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// GetOrFetch returns the cached payload for fp when a non-expired entry
// exists, otherwise invokes fetch, stores its result, and returns it.
// ttl <= 0 forces a live fetch and does not store. A fetch error is returned
// unchanged and writes nothing, so a failing upstream cannot poison the cache.
func (c *Cache[T]) GetOrFetch(fp Fingerprint, ttl time.Duration, fetch func() (T, error)) (T, error) {
	key := fp.Key()

	if ttl > 0 {
		c.mu.Lock()
		e, ok := c.entries[key]
		now := c.now()
		c.mu.Unlock()
		if ok && now.Sub(e.storedAt) <= ttl {
			return e.payload, nil
		}
	}

	payload, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	if ttl > 0 {
		c.mu.Lock()
		c.entries[key] = entry[T]{payload: payload, storedAt: c.now()}
		c.mu.Unlock()
	}
	return payload, nil
}

// FetchFresh bypasses any cached entry: it always invokes fetch, and on
// success refreshes the stored entry (when ttl > 0) so subsequent callers
// see the new payload.
func (c *Cache[T]) FetchFresh(fp Fingerprint, ttl time.Duration, fetch func() (T, error)) (T, error) {
	payload, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	if ttl > 0 {
		c.mu.Lock()
		c.entries[fp.Key()] = entry[T]{payload: payload, storedAt: c.now()}
		c.mu.Unlock()
	}
	return payload, nil
}

// Len reports how many entries the cache currently holds, expired included.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
