package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps session answers in process memory.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (m *MemoryCache) Get(key string) (bool, bool) {
	value, ok := m.cache.Get(key)
	if !ok {
		return false, false
	}
	loggedIn, ok := value.(bool)
	return loggedIn, ok
}

func (m *MemoryCache) Set(key string, value bool) {
	m.cache.SetDefault(key, value)
}
