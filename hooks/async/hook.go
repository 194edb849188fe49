// Package asynchook decouples hook delivery from the caller's goroutine.
// Events are queued to a small worker pool; when the queue is full events are
// dropped rather than blocking a cache operation.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{CorruptEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	b, _ := bucket.New[User](bucket.Options[User]{
//	    Name:  "user",
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/bucket"
)

type Hooks struct {
	inner bucket.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ bucket.Hooks = (*Hooks)(nil)

func New(inner bucket.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(k string)           { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k string)          { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) SetSkipped(k string)    { h.try(func() { h.inner.SetSkipped(k) }) }
func (h *Hooks) SetRejected(k string)   { h.try(func() { h.inner.SetRejected(k) }) }
func (h *Hooks) CorruptEntry(k string)  { h.try(func() { h.inner.CorruptEntry(k) }) }
func (h *Hooks) EngineSwapped(n string) { h.try(func() { h.inner.EngineSwapped(n) }) }
