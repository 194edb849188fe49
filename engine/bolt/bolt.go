// Package bolt implements the document-store engine on go.etcd.io/bbolt.
//
// Entries persist across restarts. bbolt has no expiry of its own, so values
// are framed with an absolute deadline (internal/record) and reaped lazily:
// an expired entry is deleted on the read that finds it.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/unkn0wn-root/bucket/engine"
	"github.com/unkn0wn-root/bucket/internal/record"
)

var ErrNoPath = errors.New("bolt engine: Path is required")

type Engine struct {
	db     *bbolt.DB
	bucket []byte
}

var _ engine.Engine = (*Engine)(nil)

type Config struct {
	// Path is the database file location. Required.
	Path string
	// Bucket is the bbolt bucket holding entries; defaults to "entries".
	Bucket string
	// OpenTimeout bounds the wait for the file lock; defaults to 1s.
	OpenTimeout time.Duration
}

// Factory opens the file named by the generic Path field and keeps each
// bucket's entries in a bbolt bucket named after the owner, so two facades
// sharing one file stay isolated even before key prefixing.
func Factory(cfg engine.Config, owner engine.Owner) (engine.Engine, error) {
	return New(Config{Path: cfg.Path, Bucket: owner.Name()})
}

func New(cfg Config) (*Engine, error) {
	if cfg.Path == "" {
		return nil, ErrNoPath
	}
	name := []byte("entries")
	if cfg.Bucket != "" {
		name = []byte(cfg.Bucket)
	}
	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Engine{db: db, bucket: name}, nil
}

func (e *Engine) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	var stale bool
	err := e.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(e.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		payload, exp, err := record.Decode(v)
		if err != nil || record.Expired(exp, time.Now()) {
			stale = true // corrupt counts as stale; reaped below
			return nil
		}
		out = append([]byte(nil), payload...) // copy out of the tx's mmap
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if stale {
		_ = e.Del(context.Background(), key)
		return nil, false, nil
	}
	if out == nil {
		return nil, false, nil
	}
	return out, true, nil
}

func (e *Engine) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	framed := record.Encode(value, exp)
	err := e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(e.bucket).Put([]byte(key), framed)
	})
	return err == nil, err
}

func (e *Engine) Del(_ context.Context, key string) error {
	return e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(e.bucket).Delete([]byte(key))
	})
}

// Clear deletes every entry under prefix in one write transaction, using a
// cursor seek so only the matching key range is visited.
func (e *Engine) Clear(_ context.Context, prefix string) error {
	p := []byte(prefix)
	return e.db.Update(func(tx *bbolt.Tx) error {
		c := tx.Bucket(e.bucket).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *Engine) Close(_ context.Context) error {
	return e.db.Close()
}
