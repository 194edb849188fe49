package record

import (
	"bytes"
	"testing"
	"time"
)

func mustDecode(t *testing.T, b []byte) ([]byte, time.Time) {
	t.Helper()
	p, exp, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return p, exp
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	exp := time.Unix(0, 1735689600000000000)
	cases := []struct {
		payload []byte
		exp     time.Time
	}{
		{nil, time.Time{}},
		{[]byte("hello"), exp},
		{[]byte{0, 1, 2, 3, 4}, exp.Add(time.Hour)},
	}
	for _, tc := range cases {
		enc := Encode(tc.payload, tc.exp)
		p, got := mustDecode(t, enc)
		if !got.Equal(tc.exp) {
			t.Fatalf("expiry mismatch: got %v want %v", got, tc.exp)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestZeroExpiryDecodesZero(t *testing.T) {
	_, exp := mustDecode(t, Encode([]byte("x"), time.Time{}))
	if !exp.IsZero() {
		t.Fatalf("expected zero expiry, got %v", exp)
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode([]byte("x"), time.Time{})
	enc = append(enc, 0xDE, 0xAD) // junk
	if _, _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode([]byte("abc"), time.Time{})

	cases := map[string]func([]byte) []byte{
		"short":       func(b []byte) []byte { return b[:4] },
		"bad magic":   func(b []byte) []byte { c := append([]byte(nil), b...); c[0] ^= 0xFF; return c },
		"bad version": func(b []byte) []byte { c := append([]byte(nil), b...); c[4] = 0xEE; return c },
		"vlen over":   func(b []byte) []byte { c := append([]byte(nil), b...); c[13] = 0xFF; return c },
		"truncated":   func(b []byte) []byte { return b[:len(b)-1] },
	}
	for name, mut := range cases {
		if _, _, err := Decode(mut(enc)); err == nil {
			t.Fatalf("%s: expected ErrCorrupt", name)
		}
	}
}

func TestZeroCopyPayload(t *testing.T) {
	enc := Encode([]byte("shared"), time.Time{})
	p, _ := mustDecode(t, enc)
	if len(p) == 0 || &p[0] != &enc[len(enc)-len(p)] {
		t.Fatalf("payload must alias the input buffer")
	}
}

func TestExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	if Expired(time.Time{}, now) {
		t.Fatalf("zero expiry never expires")
	}
	if Expired(now.Add(time.Second), now) {
		t.Fatalf("future expiry reported expired")
	}
	if !Expired(now.Add(-time.Second), now) {
		t.Fatalf("past expiry not reported expired")
	}
}
