// Package redis implements the remote key/value engine on redis/go-redis.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/bucket/engine"
)

var ErrNilClient = errors.New("redis engine: nil client")

type Engine struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ engine.Engine = (*Engine)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this engine exclusively owns the client
}

// Factory dials a client from the generic Addr/Password/DB fields. The engine
// owns that client and closes it with the bucket. To share an existing client
// construct with New and hand the engine to the bucket via a custom factory.
func Factory(cfg engine.Config, _ engine.Owner) (engine.Engine, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return New(Config{Client: rdb, CloseClient: true})
}

func New(cfg Config) (*Engine, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Engine{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (e *Engine) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := e.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (e *Engine) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = 0 // treat non-positive TTLs as "no expiry" per engine contract
	}
	if err := e.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) Del(ctx context.Context, key string) error {
	return e.rdb.Del(ctx, key).Err()
}

// Clear scans the keyspace for prefix matches and deletes them. SCAN is
// cursor-based, so keys written concurrently may or may not be seen.
func (e *Engine) Clear(ctx context.Context, prefix string) error {
	iter := e.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := e.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying redis client only when this engine owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (e *Engine) Close(context.Context) error {
	if e.closeClient {
		if err := e.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
