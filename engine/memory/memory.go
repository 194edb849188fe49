// Package memory implements the in-process engine on dgraph-io/ristretto.
package memory

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/bucket/engine"
)

type Engine struct {
	c *rc.Cache
}

var _ engine.Engine = (*Engine)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

// Factory builds a ristretto engine sized from the generic capacity hint:
// MaxCost = Count (unit cost per entry by default), NumCounters = 10x that,
// per ristretto's own sizing guidance.
func Factory(cfg engine.Config, _ engine.Owner) (engine.Engine, error) {
	count := int64(cfg.Count)
	if count <= 0 {
		count = engine.DefaultCount
	}
	return New(Config{
		NumCounters: 10 * count,
		MaxCost:     count,
		BufferItems: 64,
	})
}

func New(cfg Config) (*Engine, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("memory: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Engine{c: c}, nil
}

func (e *Engine) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := e.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		e.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (e *Engine) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	return e.c.SetWithTTL(key, value, cost, ttl), nil
}

func (e *Engine) Del(_ context.Context, key string) error {
	e.c.Del(key)
	return nil
}

// Clear drops the whole store. Ristretto cannot enumerate keys, and an
// engine instance is exclusively owned by one bucket, so the store holds
// nothing but that bucket's namespace.
func (e *Engine) Clear(_ context.Context, _ string) error {
	e.c.Clear()
	return nil
}

func (e *Engine) Close(_ context.Context) error {
	e.c.Wait()
	e.c.Close()
	return nil
}

// Wait blocks until buffered writes have been applied. Ristretto admission is
// asynchronous; tests call this to make a Set observable.
func (e *Engine) Wait() { e.c.Wait() }

// Metrics exposes ristretto metrics when enabled (not part of engine.Engine).
func (e *Engine) Metrics() *rc.Metrics { return e.c.Metrics }
