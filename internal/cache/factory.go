package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig carries every knob a provider may read. Providers ignore
// the fields that do not apply to them, so one value can be built from
// the cache section of the config and handed to whichever backend
// cache.type names.
type ProviderConfig struct {
	// Size bounds the number of stored TVMaze responses. Only the memory
	// provider enforces it; redis relies on TTL and server-side maxmemory.
	Size int

	// TTL is how long a response body stays servable after it was stored.
	TTL time.Duration

	// OnEvict, when set, is called for every entry the memory provider drops
	// because of size or expiry. Redis never calls it.
	OnEvict EvictCallback

	// Logger receives runtime errors from providers backed by a network
	// store. A nil Logger means those errors are swallowed and the call is
	// treated as a miss.
	Logger Logger

	// RedisAddress is the host:port of the redis server.
	RedisAddress string
	// RedisPassword is sent with AUTH when non-empty.
	RedisPassword string
	// RedisDB selects the logical database.
	RedisDB int

	// Group labels the Prometheus metrics of this instance. A non-empty Group
	// wraps the cache with hit/miss/eviction counters and an entries gauge.
	Group string
}

// Provider builds a Cache from cfg. Providers register themselves from an
// init function in their own file.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register makes a provider available to New under name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Cache with the named provider.
//
// When cfg.Group is set the returned cache is wrapped so that Get records
// hits and misses, evictions are counted through a chained OnEvict, and
// Len is exported as the entries gauge, all labelled with the group. An
// unknown name returns an error listing the registered providers.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	onEvict := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if onEvict != nil {
			onEvict(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
