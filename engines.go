package bucket

import (
	"github.com/unkn0wn-root/bucket/engine"
	bcengine "github.com/unkn0wn-root/bucket/engine/bigcache"
	boltengine "github.com/unkn0wn-root/bucket/engine/bolt"
	"github.com/unkn0wn-root/bucket/engine/memory"
	redisengine "github.com/unkn0wn-root/bucket/engine/redis"
)

// Reserved short engine names. Any other string is resolved through
// engine.Register / engine.Lookup.
const (
	EngineMemory   = "memory"   // in-process, ristretto
	EngineBigCache = "bigcache" // in-process, bigcache (global life window)
	EngineRedis    = "redis"    // remote key/value store
	EngineBolt     = "bolt"     // on-disk document store, bbolt
)

func builtinFactory(name string) (engine.Factory, bool) {
	switch name {
	case EngineMemory:
		return memory.Factory, true
	case EngineBigCache:
		return bcengine.Factory, true
	case EngineRedis:
		return redisengine.Factory, true
	case EngineBolt:
		return boltengine.Factory, true
	}
	return nil, false
}
