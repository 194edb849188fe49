package memory

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/unkn0wn-root/bucket/engine"
)

type owner string

func (o owner) Name() string   { return string(o) }
func (o owner) Prefix() string { return "cache:" + string(o) + ":" }

func TestFactoryDefaults(t *testing.T) {
	e, err := Factory(engine.Config{}, owner("ns"))
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	defer e.Close(context.Background())
}

func TestSetGetDelClear(t *testing.T) {
	eng, err := Factory(engine.Config{Count: 100}, owner("ns"))
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	e := eng.(*Engine)
	ctx := context.Background()
	defer e.Close(ctx)

	if ok, err := e.Set(ctx, "cache:ns:k", []byte("v1"), 1, time.Minute); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	e.Wait() // ristretto admission is async

	b, ok, err := e.Get(ctx, "cache:ns:k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v1")) {
		t.Fatalf("Get: (%q, %v, %v)", b, ok, err)
	}

	if err := e.Del(ctx, "cache:ns:k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	e.Wait()
	if _, ok, _ := e.Get(ctx, "cache:ns:k"); ok {
		t.Fatalf("deleted key still readable")
	}

	if ok, _ := e.Set(ctx, "cache:ns:k2", []byte("v2"), 1, time.Minute); !ok {
		t.Fatalf("Set rejected")
	}
	e.Wait()
	if err := e.Clear(ctx, "cache:ns:"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := e.Get(ctx, "cache:ns:k2"); ok {
		t.Fatalf("key survived Clear")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zeroed config")
	}
}
