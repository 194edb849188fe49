package bucket

import (
	"time"

	c "github.com/unkn0wn-root/bucket/codec"
	"github.com/unkn0wn-root/bucket/engine"
)

// SetCostFunc computes the admission cost handed to the engine on Set.
// Engines without a cost notion ignore it.
type SetCostFunc func(storageKey string, raw []byte) int64

// DefaultTTL applies to entries written without an explicit TTL when
// Options.TTL is zero.
const DefaultTTL = 60 * time.Second

// Options tune a Bucket. Only Name is required; everything else has a
// sensible default.
type Options[V any] struct {
	// Required
	Name string // namespace identity, e.g. "sessions", "user", "order"

	Engine  string         // engine short name or a Register-ed name; "" => "memory"
	Factory engine.Factory // when set, used instead of Engine name resolution
	Config  engine.Config  // engine construction options; Count 0 => engine.DefaultCount

	Codec          c.Codec[V]    // if nil, codec.JSON is used
	TTL            time.Duration // default entry TTL; 0 => 60s
	Logger         Logger        // if nil, NopLogger is used
	Hooks          Hooks         // if nil, NopHooks is used
	Disabled       bool          // default false (enabled)
	ComputeSetCost SetCostFunc   // default cost 1
}

// New constructs a Bucket and selects its engine. Construction failure is
// fatal: the returned error is the only artifact, there is no half-usable
// bucket to retry against.
func New[V any](opts Options[V]) (*Bucket[V], error) {
	return newBucket[V](opts)
}
