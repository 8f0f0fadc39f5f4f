// Package p256 implements signing and key management on the NIST P-256
// curve: keypair generation, public key derivation and validation,
// ECDSA signing and verification over SHA-256 digests, coordinate
// extraction, and key compression.
//
// Public keys are accepted in three wire encodings per SEC1: the
// 64-byte raw X||Y form, the 65-byte uncompressed form (0x04 prefix),
// and the 33-byte compressed form (0x02 or 0x03 prefix). Every
// operation normalizes its input to the raw form before any
// cryptographic work happens, so behavior never depends on which
// encoding the caller supplied.
//
// All operations are stateless and safe for concurrent use; no
// function retains a reference to a caller-supplied buffer.
package p256

import (
	"fmt"

	"github.com/luxfi/p256/pkg/curve"
)

const (
	// SecretKeySize is the byte length of a secret key.
	SecretKeySize = curve.SecretKeySize

	// PublicKeySize is the byte length of a raw X||Y public key, the
	// canonical form every other encoding normalizes into.
	PublicKeySize = curve.PublicKeySize

	// UncompressedPublicKeySize is the byte length of an uncompressed
	// public key, a 0x04 prefix followed by X||Y.
	UncompressedPublicKeySize = PublicKeySize + 1

	// CompressedPublicKeySize is the byte length of a compressed public
	// key, a parity prefix followed by X.
	CompressedPublicKeySize = curve.CompressedSize

	// CoordinateSize is the byte length of a single coordinate.
	CoordinateSize = curve.CoordinateSize

	// SignatureSize is the byte length of an r||s signature.
	SignatureSize = curve.SignatureSize
)

const (
	// PrefixUncompressed is the identifier byte for the uncompressed
	// form per SEC1 2.3.3.
	PrefixUncompressed byte = 0x04

	// PrefixCompressedEven is the identifier byte for a compressed key
	// whose Y coordinate is even, per SEC1 2.3.4.
	PrefixCompressedEven byte = 0x02

	// PrefixCompressedOdd is the identifier byte for a compressed key
	// whose Y coordinate is odd, per SEC1 2.3.4.
	PrefixCompressedOdd byte = 0x03
)

// PublicKeyFormat identifies which of the three accepted encodings a
// public key buffer uses.
type PublicKeyFormat int

const (
	// FormatRaw is the 64-byte X||Y form.
	FormatRaw PublicKeyFormat = iota

	// FormatUncompressed is the 65-byte 0x04-prefixed form.
	FormatUncompressed

	// FormatCompressed is the 33-byte parity-prefixed form.
	FormatCompressed
)

// String returns the format name.
func (f PublicKeyFormat) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatUncompressed:
		return "uncompressed"
	case FormatCompressed:
		return "compressed"
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// DetectFormat classifies a public key buffer by length and prefix
// alone. It does not establish that the buffer encodes a valid curve
// point.
func DetectFormat(pub []byte) (PublicKeyFormat, error) {
	switch len(pub) {
	case PublicKeySize:
		return FormatRaw, nil
	case UncompressedPublicKeySize:
		if pub[0] != PrefixUncompressed {
			return 0, fmt.Errorf("%w: 0x04 expected, got 0x%02x", ErrInvalidEncoding, pub[0])
		}
		return FormatUncompressed, nil
	case CompressedPublicKeySize:
		if pub[0] != PrefixCompressedEven && pub[0] != PrefixCompressedOdd {
			return 0, fmt.Errorf("%w: 0x02 or 0x03 expected, got 0x%02x", ErrInvalidEncoding, pub[0])
		}
		return FormatCompressed, nil
	}
	return 0, fmt.Errorf("%w: %d bytes", ErrInvalidKeyLength, len(pub))
}

// NormalizePublicKey accepts a public key in any of the three encodings
// and returns a fresh copy in the canonical 64-byte raw form.
//
// Raw and uncompressed inputs pass through without an on-curve check;
// use ValidatePublicKey for that. A compressed input is decompressed by
// the curve engine and therefore only succeeds for a real point.
func NormalizePublicKey(pub []byte) ([]byte, error) {
	format, err := DetectFormat(pub)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatUncompressed:
		pub = pub[1:]
	case FormatCompressed:
		raw, err := curve.DecompressPublicKey(pub)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompressionFailed, err)
		}
		return raw, nil
	}
	out := make([]byte, PublicKeySize)
	copy(out, pub)
	return out, nil
}
