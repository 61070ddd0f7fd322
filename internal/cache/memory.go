package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps recently fetched filing text in process, so a batch
// that scans several documents of the same accession pays the download
// once. Entries expire on TTL; filings are immutable once published, so
// expiry is about memory pressure, not staleness.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. defaultTTL applies to Set
// calls with a zero TTL; cleanupInterval bounds how long expired
// filing text lingers before the sweeper reclaims it.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached filing text for key, if present and unexpired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores filing text under key. A zero ttl uses the default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete evicts one key.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every cached filing.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
