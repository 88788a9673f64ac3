package session

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

const memcachedPrefix = "agenda-submission:session:"

// MemcachedCache shares session answers between replicas. Lookup failures
// are treated as cache misses; the store remains the source of truth.
type MemcachedCache struct {
	client *memcache.Client
	ttl    int32
}

func NewMemcachedCache(client *memcache.Client, ttl time.Duration) *MemcachedCache {
	return &MemcachedCache{
		client: client,
		ttl:    int32(ttl / time.Second),
	}
}

func (m *MemcachedCache) Get(key string) (bool, bool) {
	item, err := m.client.Get(memcachedPrefix + key)
	if err != nil {
		return false, false
	}
	return len(item.Value) == 1 && item.Value[0] == '1', true
}

func (m *MemcachedCache) Set(key string, value bool) {
	payload := []byte("0")
	if value {
		payload = []byte("1")
	}
	_ = m.client.Set(&memcache.Item{
		Key:        memcachedPrefix + key,
		Value:      payload,
		Expiration: m.ttl,
	})
}
