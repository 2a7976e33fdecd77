package client

import (
	"strings"
	"sync"
	"time"
)

const cacheTTL = 5 * time.Minute

// readCache holds decoded read responses for a short window so repeated page
// views skip the wire. Entries expire lazily; mutations drop whole scopes.
type readCache struct {
	items sync.Map
	ttl   time.Duration
}

type cacheItem struct {
	value      any
	expiration int64
}

func newReadCache(ttl time.Duration) *readCache {
	return &readCache{ttl: ttl}
}

func (c *readCache) get(key string) (any, bool) {
	val, ok := c.items.Load(key)
	if !ok {
		return nil, false
	}

	item := val.(cacheItem)
	if time.Now().UnixNano() > item.expiration {
		c.items.Delete(key)
		return nil, false
	}
	return item.value, true
}

func (c *readCache) set(key string, value any) {
	c.items.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	})
}

// invalidatePrefix drops every entry whose key starts with prefix.
func (c *readCache) invalidatePrefix(prefix string) {
	c.items.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.items.Delete(key)
		}
		return true
	})
}

func (c *readCache) invalidateAll() {
	c.items.Range(func(key, _ any) bool {
		c.items.Delete(key)
		return true
	})
}
