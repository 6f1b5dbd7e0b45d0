package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-landwatch/types"
)

// ResponseCache holds finished search responses keyed by Key().
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]types.PolicyEvent, bool, error)
	Set(ctx context.Context, key string, events []types.PolicyEvent) error
	Len(ctx context.Context) (int, error)
}

// Key identifies one page of one search.
func Key(mode string, page int, query string) string {
	return fmt.Sprintf("%s|%d|%s", mode, page, strings.ToLower(strings.TrimSpace(query)))
}

type entry struct {
	events  []types.PolicyEvent
	expires time.Time
}

// MemoryCache expires entries lazily on read.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]types.PolicyEvent, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.events, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, events []types.PolicyEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{events: events, expires: c.now().Add(c.ttl)}
	return nil
}

// Len counts entries that have not expired yet.
func (c *MemoryCache) Len(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			continue
		}
		n++
	}
	return n, nil
}
