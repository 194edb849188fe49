package bolt

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/unkn0wn-root/bucket/engine"
)

type owner string

func (o owner) Name() string   { return string(o) }
func (o owner) Prefix() string { return "cache:" + string(o) + ":" }

func openTest(t *testing.T) engine.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bucket.db")
	e, err := Factory(engine.Config{Path: path}, owner("ns"))
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	t.Cleanup(func() { _ = e.Close(context.Background()) })
	return e
}

func TestFactoryRequiresPath(t *testing.T) {
	if _, err := Factory(engine.Config{}, owner("ns")); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestSetGetDel(t *testing.T) {
	e := openTest(t)
	ctx := context.Background()

	if _, ok, err := e.Get(ctx, "cache:ns:k"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if ok, err := e.Set(ctx, "cache:ns:k", []byte("v1"), 1, time.Minute); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	b, ok, err := e.Get(ctx, "cache:ns:k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v1")) {
		t.Fatalf("Get: (%q, %v, %v)", b, ok, err)
	}
	if err := e.Del(ctx, "cache:ns:k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := e.Get(ctx, "cache:ns:k"); ok {
		t.Fatalf("deleted key still readable")
	}
}

func TestExpiryReapedOnRead(t *testing.T) {
	e := openTest(t)
	ctx := context.Background()

	if ok, err := e.Set(ctx, "cache:ns:tmp", []byte("v"), 1, time.Millisecond); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, err := e.Get(ctx, "cache:ns:tmp"); ok || err != nil {
		t.Fatalf("expired entry must read as a miss, got ok=%v err=%v", ok, err)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	e := openTest(t)
	ctx := context.Background()

	if ok, err := e.Set(ctx, "cache:ns:perm", []byte("v"), 1, 0); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if _, ok, err := e.Get(ctx, "cache:ns:perm"); !ok || err != nil {
		t.Fatalf("zero-ttl entry must persist, got ok=%v err=%v", ok, err)
	}
}

func TestClearScopedToPrefix(t *testing.T) {
	e := openTest(t)
	ctx := context.Background()

	for _, k := range []string{"cache:a:1", "cache:a:2", "cache:b:1"} {
		if ok, err := e.Set(ctx, k, []byte("v"), 1, time.Minute); !ok || err != nil {
			t.Fatalf("Set %s: ok=%v err=%v", k, ok, err)
		}
	}
	if err := e.Clear(ctx, "cache:a:"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"cache:a:1", "cache:a:2"} {
		if _, ok, _ := e.Get(ctx, k); ok {
			t.Fatalf("%s survived Clear", k)
		}
	}
	if _, ok, _ := e.Get(ctx, "cache:b:1"); !ok {
		t.Fatalf("Clear crossed the prefix boundary")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bucket.db")
	ctx := context.Background()

	e, err := New(Config{Path: path, Bucket: "ns"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ok, err := e.Set(ctx, "cache:ns:k", []byte("v"), 1, time.Hour); !ok || err != nil {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if err := e.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	e, err = New(Config{Path: path, Bucket: "ns"})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer e.Close(ctx)
	b, ok, err := e.Get(ctx, "cache:ns:k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("entry lost across reopen: (%q, %v, %v)", b, ok, err)
	}
}
