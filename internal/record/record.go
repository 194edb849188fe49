// Package record frames cache payloads with an absolute expiry for engines
// whose store has no native per-entry TTL (bolt). The framing is fully
// reversed on read, keeping the engine byte-transparent to callers.
package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("record: corrupt entry")
	magic4     = [...]byte{'B', 'K', 'T', 'R'}
)

const hdr = 4 + 1 + 8 + 4 // magic | ver | expiry(u64 be) | vlen(u32 be)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload with expiresAt. A zero expiresAt means "no expiry".
// Layout: magic(4) | ver(1) | exp unix-nanos(u64 be) | vlen(u32 be) | payload(vlen)
func Encode(payload []byte, expiresAt time.Time) []byte {
	var exp uint64
	if !expiresAt.IsZero() {
		exp = uint64(expiresAt.UnixNano())
	}

	var buf bytes.Buffer
	buf.Grow(hdr + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], exp)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode reverses Encode. The returned payload aliases b; callers that retain
// it past b's lifetime must copy. A zero returned time means "no expiry".
func Decode(b []byte) (payload []byte, expiresAt time.Time, err error) {
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return nil, time.Time{}, ErrCorrupt
	}

	off := 5

	exp := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe; trailing bytes are corruption
		return nil, time.Time{}, ErrCorrupt
	}

	var t time.Time
	if exp != 0 {
		t = time.Unix(0, int64(exp))
	}
	return b[off : off+vlen], t, nil
}

// Expired reports whether a decoded expiry has passed at now.
// A zero expiry never expires.
func Expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && now.After(expiresAt)
}
