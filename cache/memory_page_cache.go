package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const DefaultMemoryCacheSize = 1024

type memoryEntry struct {
	page      Page
	expiresAt time.Time
}

// MemoryPageCache keeps pages in a bounded in-process LRU. It is meant for a
// single server process, use RedisPageCache when several share the cache.
type MemoryPageCache struct {
	inner *lru.Cache
	now   func() time.Time
}

func NewMemoryPageCache(size int) (*MemoryPageCache, error) {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	inner, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "fail to create lru cache")
	}
	return &MemoryPageCache{inner: inner, now: time.Now}, nil
}

func (m *MemoryPageCache) Get(ctx context.Context, key string) (*Page, bool, error) {
	v, ok := m.inner.Get(key)
	if !ok {
		return nil, false, nil
	}
	entry := v.(memoryEntry)
	if !m.now().Before(entry.expiresAt) {
		m.inner.Remove(key)
		return nil, false, nil
	}
	page := entry.page
	return &page, true, nil
}

func (m *MemoryPageCache) Set(ctx context.Context, key string, page *Page, ttl time.Duration) error {
	m.inner.Add(key, memoryEntry{page: *page, expiresAt: m.now().Add(ttl)})
	return nil
}

func (m *MemoryPageCache) Clear(ctx context.Context) error {
	m.inner.Purge()
	return nil
}
