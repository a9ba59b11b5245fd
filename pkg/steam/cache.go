package steam

import (
	"sync"
	"time"
)

type cacheEntry struct {
	games   []OwnedGame
	expires time.Time
}

type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cache) get(steamID string) ([]OwnedGame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[steamID]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.games, true
}

func (c *cache) set(steamID string, games []OwnedGame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[steamID] = cacheEntry{
		games:   games,
		expires: time.Now().Add(c.ttl),
	}
}
