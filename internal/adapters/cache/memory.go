package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize caps the number of responses kept in process.
const DefaultMemorySize = 1024

type entry struct {
	val     []byte
	expires time.Time
}

// Memory is a process-local, size-bounded TTL cache. The least recently used
// entry is evicted once size is reached, and entries older than maxTTL are
// dropped in the background whether or not they are read again.
type Memory struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

// NewMemory builds a cache holding at most size entries for at most maxTTL.
// A shorter per-entry TTL passed to Set is honoured on read.
func NewMemory(size int, maxTTL time.Duration) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{
		lru: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expires) {
		m.lru.Remove(key)
		return nil, false
	}
	return e.val, true
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	m.lru.Add(key, entry{val: cp, expires: m.now().Add(ttl)})
}

func (m *Memory) Len() int { return m.lru.Len() }
