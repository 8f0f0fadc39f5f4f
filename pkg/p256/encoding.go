package p256

import (
	"fmt"

	"github.com/luxfi/p256/pkg/curve"
)

// Coordinates normalizes a public key in any encoding and returns its
// affine coordinates as two 32-byte big-endian buffers.
func Coordinates(pub []byte) (x, y []byte, err error) {
	raw, err := NormalizePublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	return raw[:CoordinateSize], raw[CoordinateSize:], nil
}

// Compress normalizes a public key in any encoding and returns its
// 33-byte compressed form. On failure no output buffer is returned.
func Compress(pub []byte) ([]byte, error) {
	raw, err := NormalizePublicKey(pub)
	if err != nil {
		return nil, err
	}
	compressed, err := curve.CompressPublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompressionFailed, err)
	}
	return compressed, nil
}
