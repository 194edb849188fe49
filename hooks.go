package bucket

// Hooks are lightweight callbacks for high-signal events. Implementations
// MUST be cheap and non-blocking; the bucket calls them on hot paths.
// Wrap with hooks/async to move work off the caller's goroutine.
type Hooks interface {
	// A read found a live entry / found nothing. key is the caller's key,
	// not the fully-qualified one.
	Hit(key string)
	Miss(key string)

	// A Set carried a nil value and was elided before reaching the engine.
	SetSkipped(key string)

	// The engine returned ok=false on Set (backpressure/eviction).
	SetRejected(storageKey string)

	// A stored entry failed to decode and was deleted on read.
	CorruptEntry(storageKey string)

	// The active engine was replaced. name is empty for factory selection.
	EngineSwapped(name string)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) Hit(string)           {}
func (NopHooks) Miss(string)          {}
func (NopHooks) SetSkipped(string)    {}
func (NopHooks) SetRejected(string)   {}
func (NopHooks) CorruptEntry(string)  {}
func (NopHooks) EngineSwapped(string) {}
