// Package bucket is a thin, namespaced key/value caching facade over
// interchangeable storage engines. A Bucket holds a name, a default TTL and
// exactly one engine; it prefixes every key with "cache:<name>:" and forwards
// the operation. Storage, eviction and expiry all belong to the engine.
//
// Components:
//   - engine.Engine: byte store with TTL (ristretto, bigcache, redis, bbolt).
//   - codec.Codec[V]: (de)serializes V <-> []byte at the facade edge.
//   - engine.Register: name-based resolution for out-of-tree engines.
//
// Keys:
//
//	cache:<name>:<key>  - entries
//	cache:<name>:       - the bare prefix; Clear targets it, Del("") hits it
//
// Typical use:
//
//	b, _ := bucket.New[Session](bucket.Options[Session]{Name: "sessions", TTL: 30 * time.Second})
//	_ = b.Set(ctx, "u1", sess, 0)
//	s, ok, _ := b.Get(ctx, "u1")
//	s, _ = b.Cache(ctx, "u2", fresh, 0) // get-or-set; existing value wins
package bucket
