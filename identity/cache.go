package identity

import (
	"sync"
	"time"
)

// Cache stores resolved identities keyed by user id only; the credential is
// deliberately not part of the key. Implementations may fail (a store-backed
// cache losing connectivity) — callers treat any error as a miss.
type Cache interface {
	Get(userID uint) (*UserInfo, bool, error)
	Set(userID uint, info *UserInfo) error
}

type cacheEntry struct {
	info      UserInfo
	expiresAt time.Time
}

// MemoryCache is a TTL cache safe for concurrent use. Expired entries are
// evicted lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uint]cacheEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[uint]cacheEntry),
	}
}

func (c *MemoryCache) Get(userID uint) (*UserInfo, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		if e, ok := c.entries[userID]; ok && time.Now().After(e.expiresAt) {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	info := entry.info
	return &info, true, nil
}

func (c *MemoryCache) Set(userID uint, info *UserInfo) error {
	c.mu.Lock()
	c.entries[userID] = cacheEntry{
		info:      *info,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}
