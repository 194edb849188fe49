package bucket

import (
	"context"
	"fmt"
	"sync"
	"time"

	c "github.com/unkn0wn-root/bucket/codec"
	"github.com/unkn0wn-root/bucket/engine"
)

// Bucket is a named cache namespace over exactly one engine. Every
// caller-supplied key is scoped with the bucket prefix before it reaches the
// engine; the engine never sees bare keys.
type Bucket[V any] struct {
	name   string
	prefix string

	codec c.Codec[V]
	log   Logger
	hooks Hooks

	enabled        bool
	defaultTTL     time.Duration
	cfg            engine.Config
	computeSetCost SetCostFunc

	// mu guards engine replacement only. Operations against the active
	// engine are not serialized; ordering is whatever the engine provides.
	mu  sync.RWMutex
	eng engine.Engine
}

var _ engine.Owner = (*Bucket[struct{}])(nil)

func newBucket[V any](opts Options[V]) (*Bucket[V], error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	b := &Bucket[V]{
		name:    opts.Name,
		prefix:  "cache:" + opts.Name + ":",
		enabled: !opts.Disabled,
	}

	// defaults
	b.log = coalesce[Logger](opts.Logger, NopLogger{})
	b.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	b.defaultTTL = coalesce[time.Duration](opts.TTL, DefaultTTL)

	if opts.Codec != nil {
		b.codec = opts.Codec
	} else {
		b.codec = c.JSON[V]{}
	}

	if opts.ComputeSetCost != nil {
		b.computeSetCost = opts.ComputeSetCost
	} else {
		b.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	b.cfg = opts.Config
	if b.cfg.Count <= 0 {
		b.cfg.Count = engine.DefaultCount
	}
	if b.cfg.TTL <= 0 {
		b.cfg.TTL = b.defaultTTL
	}

	var err error
	if opts.Factory != nil {
		err = b.UseFactory(opts.Factory)
	} else {
		err = b.SelectEngine(coalesce(opts.Engine, EngineMemory))
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Name returns the namespace identity.
func (b *Bucket[V]) Name() string { return b.name }

// Prefix returns the string prepended to every caller key.
func (b *Bucket[V]) Prefix() string { return b.prefix }

// Enabled reports whether operations reach the engine at all.
func (b *Bucket[V]) Enabled() bool { return b.enabled }

// Engine returns the currently active engine.
func (b *Bucket[V]) Engine() engine.Engine {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.eng
}

// SelectEngine resolves name against the built-in engines, then the registry,
// constructs the engine and makes it active. An optional cfg overrides the
// bucket's own construction config for this call.
//
// On failure the previous engine (if any) stays active and usable; on success
// it is dropped without cleanup - the caller owns closing a replaced engine.
func (b *Bucket[V]) SelectEngine(name string, cfg ...engine.Config) error {
	if name == "" {
		return &SelectError{Engine: name, Err: fmt.Errorf("%w: empty engine name", ErrInvalidArgument)}
	}
	f, ok := builtinFactory(name)
	if !ok {
		f, ok = engine.Lookup(name)
	}
	if !ok {
		return &SelectError{Engine: name, Err: ErrUnknownEngine}
	}
	if err := b.useFactory(f, cfg); err != nil {
		return &SelectError{Engine: name, Err: err}
	}
	b.hooks.EngineSwapped(name)
	b.log.Debug("engine selected", Fields{"bucket": b.name, "engine": name})
	return nil
}

// UseFactory installs an engine produced by f, bypassing name resolution.
// Replacement semantics match SelectEngine.
func (b *Bucket[V]) UseFactory(f engine.Factory, cfg ...engine.Config) error {
	if f == nil {
		return fmt.Errorf("%w: nil engine factory", ErrInvalidArgument)
	}
	if err := b.useFactory(f, cfg); err != nil {
		return err
	}
	b.hooks.EngineSwapped("")
	b.log.Debug("engine selected", Fields{"bucket": b.name, "engine": "factory"})
	return nil
}

func (b *Bucket[V]) useFactory(f engine.Factory, cfg []engine.Config) error {
	use := b.cfg
	if len(cfg) > 0 {
		use = cfg[0]
		if use.Count <= 0 {
			use.Count = engine.DefaultCount
		}
	}
	eng, err := f(use, b)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.eng = eng
	b.mu.Unlock()
	return nil
}

// Close closes the active engine. The bucket itself has no other resources.
func (b *Bucket[V]) Close(ctx context.Context) error {
	if eng := b.Engine(); eng != nil {
		return eng.Close(ctx)
	}
	return nil
}

// Get reads key. A miss is (zero, false, nil); engine errors pass through
// verbatim. An entry that fails to decode is deleted and reported as a miss.
func (b *Bucket[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !b.enabled {
		return zero, false, nil
	}
	k := b.prefix + key
	eng := b.Engine()
	raw, ok, err := eng.Get(ctx, k)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		b.hooks.Miss(key)
		return zero, false, nil
	}
	v, err := b.codec.Decode(raw)
	if err != nil {
		_ = eng.Del(ctx, k) // self-heal corrupt
		b.hooks.CorruptEntry(k)
		b.log.Debug("corrupt entry dropped on read", Fields{"key": k, "err": err})
		return zero, false, nil
	}
	b.hooks.Hit(key)
	return v, true, nil
}

// Set writes value under key. A ttl <= 0 falls back to the bucket default.
// A nil value is a successful no-op that never reaches the engine: writing
// "no value" is not a delete.
func (b *Bucket[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if !b.enabled {
		return nil
	}
	if isNil(value) {
		b.hooks.SetSkipped(key)
		b.log.Debug("set skipped (nil value)", Fields{"key": key})
		return nil
	}
	if ttl <= 0 {
		ttl = b.defaultTTL
	}
	raw, err := b.codec.Encode(value)
	if err != nil {
		return err
	}
	k := b.prefix + key
	ok, err := b.Engine().Set(ctx, k, raw, b.computeSetCost(k, raw), ttl)
	if err != nil {
		return err
	}
	if !ok {
		b.hooks.SetRejected(k)
		b.log.Debug("set rejected by engine (pressure)", Fields{"key": k})
	}
	return nil
}

// Cache is get-or-set. An existing entry wins and value is discarded; on a
// miss, value is written and returned. A read error surfaces as-is and no
// write happens.
//
// Not atomic: concurrent callers for the same key may both observe a miss
// and both write; the last write wins. Callers needing exclusion must bring
// their own.
func (b *Bucket[V]) Cache(ctx context.Context, key string, value V, ttl time.Duration) (V, error) {
	got, ok, err := b.Get(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	if ok {
		return got, nil
	}
	if err := b.Set(ctx, key, value, ttl); err != nil {
		var zero V
		return zero, err
	}
	return value, nil
}

// Del removes key. An empty key deletes at the bare prefix, which some
// engines treat as a bucket-wide address.
func (b *Bucket[V]) Del(ctx context.Context, key string) error {
	if !b.enabled {
		return nil
	}
	return b.Engine().Del(ctx, b.prefix+key)
}

// Clear removes every entry under the bucket prefix. The facade issues no
// enumeration itself; prefix-wildcard semantics are the engine's.
func (b *Bucket[V]) Clear(ctx context.Context) error {
	if !b.enabled {
		return nil
	}
	return b.Engine().Clear(ctx, b.prefix)
}
