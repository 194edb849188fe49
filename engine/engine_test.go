package engine

import (
	"context"
	"testing"
	"time"
)

type nopEngine struct{}

func (nopEngine) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopEngine) Set(context.Context, string, []byte, int64, time.Duration) (bool, error) {
	return true, nil
}
func (nopEngine) Del(context.Context, string) error   { return nil }
func (nopEngine) Clear(context.Context, string) error { return nil }
func (nopEngine) Close(context.Context) error         { return nil }

func TestRegisterAndLookup(t *testing.T) {
	f := func(Config, Owner) (Engine, error) { return nopEngine{}, nil }
	Register("engine-test-nop", f)

	got, ok := Lookup("engine-test-nop")
	if !ok || got == nil {
		t.Fatalf("registered factory not found")
	}
	if _, ok := Lookup("engine-test-absent"); ok {
		t.Fatalf("lookup of unregistered name must fail")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}
	f := func(Config, Owner) (Engine, error) { return nopEngine{}, nil }
	mustPanic("empty name", func() { Register("", f) })
	mustPanic("nil factory", func() { Register("engine-test-nil", nil) })

	Register("engine-test-dup", f)
	mustPanic("duplicate", func() { Register("engine-test-dup", f) })
}
