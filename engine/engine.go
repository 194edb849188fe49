// Package engine defines the storage capability contract used by bucket.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression, expiry framing), they MUST
// be fully reversed so that the bytes returned by Get are identical to the
// bytes provided to Set.
//
// Important: the keyspace "cache:<name>:" is owned by the bucket that selected
// the engine. External code MUST NOT write values under a bucket's prefix.
// Foreign writes may be treated as corruption by the facade and deleted.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultCount is the capacity hint applied when Config.Count is zero.
// It bounds sizing decisions in engines that need one (e.g. ristretto
// admission counters); engines without a capacity notion ignore it.
const DefaultCount = 1000

// Engine is a minimal byte store with TTLs, scoped by fully-qualified keys.
// Must be safe for concurrent use and must not mutate stored values.
type Engine interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Clear removes every entry whose key starts with prefix.
	Clear(ctx context.Context, prefix string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Owner is the bucket self-reference handed to factories at construction.
// It exposes only what engines legitimately need: the namespace identity.
type Owner interface {
	Name() string
	Prefix() string
}

// Config carries engine construction options. Engines read the fields that
// apply to them and ignore the rest.
type Config struct {
	// Count is a capacity hint (max entries); 0 means DefaultCount.
	Count int

	// TTL is the owner bucket's default entry TTL. Engines without per-entry
	// expiry (bigcache) use it as their global life window.
	TTL time.Duration

	// Addr, Password, DB configure network engines (redis).
	Addr     string
	Password string
	DB       int

	// Path is the on-disk location for file-backed engines (bolt).
	Path string
}

// Factory produces an engine instance for a bucket.
type Factory func(cfg Config, owner Owner) (Engine, error)

var (
	regMu    sync.RWMutex
	registry = make(map[string]Factory)
)

// Register makes a factory resolvable by name, alongside the built-in short
// names. Registering an already-registered name panics: two packages fighting
// over one name is a wiring bug, not a runtime condition.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("engine: Register with empty name or nil factory")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("engine: duplicate Register(%q)", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name, if any.
func Lookup(name string) (Factory, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}
