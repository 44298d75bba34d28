package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache keeps response bodies in process. Entries leave either when
// the LRU is full or when their TTL passes, whichever comes first; the
// expirable LRU sweeps expired entries in the background and also refuses
// to return them on Get.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

// newMemoryCache never fails. A Size of zero or less makes the LRU
// unbounded, leaving TTL as the only limit.
func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	var onEvict lru.EvictCallback[string, []byte]
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) {
			cfg.OnEvict(key, value)
		}
	}
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

// Get marks key as recently used on a hit.
func (m *memoryCache) Get(key string) ([]byte, bool) {
	return m.inner.Get(key)
}

// Set restarts the TTL of key, and may evict the least recently used entry.
func (m *memoryCache) Set(key string, value []byte) {
	m.inner.Add(key, value)
}

// Len may still count entries that expired since the last sweep.
func (m *memoryCache) Len() int {
	return m.inner.Len()
}

// Close is a no-op; the memory provider holds no external resources.
func (m *memoryCache) Close() error {
	return nil
}
