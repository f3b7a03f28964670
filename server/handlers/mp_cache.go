package handlers

import (
	"sync"
	"time"
)

// mountPointCache remembers recent uniqueness lookups so bursts of form
// edits do not hammer the registry. It is advisory only: races between
// concurrent fills are harmless because the downstream system enforces
// real uniqueness.
type mountPointCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]mountPointCacheEntry
	puts    int
}

type mountPointCacheEntry struct {
	taken     bool
	expiresAt time.Time
}

// sweepEvery bounds growth: every N inserts the expired keys are dropped.
const sweepEvery = 256

func newMountPointCache(ttl time.Duration) *mountPointCache {
	return &mountPointCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]mountPointCacheEntry),
	}
}

func (c *mountPointCache) get(mountPoint string) (taken, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[mountPoint]
	if !ok || !e.expiresAt.After(c.now()) {
		return false, false
	}

	return e.taken, true
}

func (c *mountPointCache) put(mountPoint string, taken bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[mountPoint] = mountPointCacheEntry{
		taken:     taken,
		expiresAt: c.now().Add(c.ttl),
	}

	c.puts++
	if c.puts%sweepEvery == 0 {
		c.sweepLocked()
	}
}

func (c *mountPointCache) sweepLocked() {
	now := c.now()
	for k, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, k)
		}
	}
}
