// Package lock provides the try-acquire tables guarding concurrent submit
// and reorder operations. There is no queuing; a busy key is rejected so the
// caller can surface a conflict instead of piling up writers.
package lock

import (
	"context"
	"sync"

	"github.com/zeebo/xxh3"
)

const shardCount = 32

// Memory is a striped in-process lock table. Suitable for single-replica
// deployments; use Redis when the service runs more than one instance.
type Memory struct {
	shards [shardCount]shard
}

type shard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemory() *Memory {
	m := &Memory{}
	for i := range m.shards {
		m.shards[i].held = make(map[string]struct{})
	}
	return m
}

func (m *Memory) shardFor(key string) *shard {
	return &m.shards[xxh3.HashString(key)%shardCount]
}

func (m *Memory) TryAcquire(_ context.Context, key string) (bool, error) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.held[key]; busy {
		return false, nil
	}
	s.held[key] = struct{}{}
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, key)
	return nil
}
