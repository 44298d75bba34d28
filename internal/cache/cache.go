// Package cache stores raw TVMaze response bodies keyed by request URL.
package cache

// EvictCallback is called when an entry is evicted from the cache.
// The redis provider never calls it: expiry there happens server-side.
type EvictCallback func(key string, value []byte)

// Logger receives errors from backends whose operations can fail at runtime.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a bounded key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit, nil and false on a miss.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte)

	// Len returns the number of live entries.
	Len() int

	// Close releases connections held by the backend.
	Close() error
}
