// Package bigcache implements an in-process engine on allegro/bigcache.
//
// BigCache has no per-entry TTL: entries live for the cache-wide LifeWindow.
// The factory seeds the window from the owning bucket's default TTL, so
// per-operation TTLs passed to Set are accepted and ignored.
package bigcache

import (
	"context"
	"strings"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/bucket/engine"
)

type Engine struct {
	c *bc.BigCache
}

var _ engine.Engine = (*Engine)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func Factory(cfg engine.Config, _ engine.Owner) (engine.Engine, error) {
	life := cfg.TTL
	if life <= 0 {
		life = time.Minute
	}
	count := cfg.Count
	if count <= 0 {
		count = engine.DefaultCount
	}
	return New(Config{
		LifeWindow:         life,
		MaxEntriesInWindow: count,
	})
}

func New(cfg Config) (*Engine, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Engine{c: c}, nil
}

func (e *Engine) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := e.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (e *Engine) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	return true, e.c.Set(key, value)
}

func (e *Engine) Del(_ context.Context, key string) error {
	err := e.c.Delete(key)
	if err == bc.ErrEntryNotFound {
		return nil
	}
	return err
}

// Clear walks the iterator and deletes keys under prefix. BigCache snapshots
// its iterator, so entries written during the walk may survive.
func (e *Engine) Clear(_ context.Context, prefix string) error {
	it := e.c.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue
		}
		if strings.HasPrefix(info.Key(), prefix) {
			_ = e.c.Delete(info.Key())
		}
	}
	return nil
}

func (e *Engine) Close(_ context.Context) error {
	return e.c.Close()
}
