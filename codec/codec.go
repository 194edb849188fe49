// Package codec provides pluggable value serialization for bucket. The
// facade encodes at the edge; engines only ever see opaque bytes.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
