// Package sloghooks emits bucket hook events through slog, with optional
// sampling on the hot-path events (hits and misses fire constantly; nobody
// wants one log line per read).
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/bucket"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitMissEvery uint64
	CorruptEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitMissCtr atomic.Uint64
	corruptCtr atomic.Uint64
}

var _ bucket.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(key string) {
	if h.l == nil || !sample(h.opts.HitMissEvery, &h.hitMissCtr) {
		return
	}
	h.l.Debug("bucket.hit", "key", h.redact(key))
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.HitMissEvery, &h.hitMissCtr) {
		return
	}
	h.l.Debug("bucket.miss", "key", h.redact(key))
}

func (h *Hooks) SetSkipped(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("bucket.set_skipped", "key", h.redact(key))
}

func (h *Hooks) SetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("bucket.set_rejected", "key", h.redact(storageKey))
}

func (h *Hooks) CorruptEntry(storageKey string) {
	if h.l == nil || !sample(h.opts.CorruptEvery, &h.corruptCtr) {
		return
	}
	h.l.Warn("bucket.corrupt_entry", "key", h.redact(storageKey))
}

func (h *Hooks) EngineSwapped(name string) {
	if h.l == nil {
		return
	}
	h.l.Info("bucket.engine_swapped", "engine", name)
}
