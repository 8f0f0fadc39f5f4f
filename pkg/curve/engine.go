// Package curve wraps the standard library's constant-time NIST P-256
// implementation behind the small set of primitives the rest of this
// module depends on: keypair generation, public key derivation and
// validation, point compression and decompression, and ECDSA signing
// and verification over fixed-size byte buffers.
//
// All keys, points, and signatures cross this boundary as raw bytes:
// secrets and coordinates are 32 bytes big-endian, points are the
// 64-byte X||Y concatenation, signatures are the 64-byte r||s
// concatenation.
package curve

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// SecretKeySize is the byte length of a P-256 secret scalar.
	SecretKeySize = 32

	// PublicKeySize is the byte length of an X||Y affine point.
	PublicKeySize = 64

	// CoordinateSize is the byte length of a single field element.
	CoordinateSize = 32

	// CompressedSize is the byte length of a compressed point,
	// one prefix byte followed by X.
	CompressedSize = 33

	// DigestSize is the byte length of the digests this engine signs.
	DigestSize = 32

	// NonceSize is the byte length of a caller-supplied signing nonce.
	NonceSize = 32

	// SignatureSize is the byte length of an r||s signature.
	SignatureSize = 64
)

var (
	// ErrInvalidScalar is returned when a secret or nonce is zero or
	// not below the group order.
	ErrInvalidScalar = errors.New("scalar is zero or not below the group order")

	// ErrInvalidPoint is returned when an encoding does not describe a
	// point on the curve.
	ErrInvalidPoint = errors.New("encoding does not describe a curve point")

	// ErrInvalidNonce is returned when a caller-supplied nonce cannot
	// be used to produce a signature.
	ErrInvalidNonce = errors.New("nonce is not a usable scalar")
)

var p256 = elliptic.P256()

// GenerateKeypair creates a fresh keypair using crypto/rand.
func GenerateKeypair() (secret, public []byte, err error) {
	priv, err := ecdsa.GenerateKey(p256, rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	secret = make([]byte, SecretKeySize)
	priv.D.FillBytes(secret)
	return secret, encodePoint(priv.X, priv.Y), nil
}

// DerivePublicKey computes the public point for a 32-byte secret
// scalar. The scalar must be in [1, n-1].
func DerivePublicKey(secret []byte) ([]byte, error) {
	d, err := parseScalar(secret)
	if err != nil {
		return nil, err
	}
	x, y := p256.ScalarBaseMult(d.Bytes())
	return encodePoint(x, y), nil
}

// ValidatePublicKey reports whether a 64-byte raw point lies on the
// curve. The identity is not representable in affine coordinates and
// is rejected along with out-of-range coordinates.
func ValidatePublicKey(public []byte) bool {
	if len(public) != PublicKeySize {
		return false
	}
	x, y := parsePoint(public)
	if x.Sign() == 0 && y.Sign() == 0 {
		return false
	}
	return p256.IsOnCurve(x, y)
}

// DecompressPublicKey recovers the full 64-byte point from a 33-byte
// compressed encoding.
func DecompressPublicKey(compressed []byte) ([]byte, error) {
	if len(compressed) != CompressedSize {
		return nil, ErrInvalidPoint
	}
	x, y := elliptic.UnmarshalCompressed(p256, compressed)
	if x == nil {
		return nil, ErrInvalidPoint
	}
	return encodePoint(x, y), nil
}

// CompressPublicKey produces the 33-byte compressed encoding of a
// 64-byte raw point.
func CompressPublicKey(public []byte) ([]byte, error) {
	if len(public) != PublicKeySize {
		return nil, ErrInvalidPoint
	}
	x, y := parsePoint(public)
	params := p256.Params()
	if x.Cmp(params.P) >= 0 || y.Cmp(params.P) >= 0 {
		return nil, ErrInvalidPoint
	}
	return elliptic.MarshalCompressed(p256, x, y), nil
}

// Sign produces an r||s signature over a 32-byte digest using an
// internally generated random nonce.
func Sign(secret, digest []byte) ([]byte, error) {
	d, err := parseScalar(secret)
	if err != nil {
		return nil, err
	}
	priv := privateKey(d)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, err
	}
	return encodeSignature(r, s), nil
}

// SignWithNonce produces an r||s signature over a 32-byte digest using
// the caller-supplied nonce, so the same (secret, digest, nonce) triple
// always yields the same signature. Reusing a nonce across two digests
// under the same secret leaks the secret; that obligation sits with the
// caller.
func SignWithNonce(secret, digest, nonce []byte) ([]byte, error) {
	d, err := parseScalar(secret)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}
	n := p256.Params().N
	k := new(big.Int).SetBytes(nonce)
	if k.Sign() == 0 || k.Cmp(n) >= 0 {
		return nil, ErrInvalidNonce
	}

	// r = (kG).x mod n, s = k^-1 (z + r d) mod n, per FIPS 186-3.
	rx, _ := p256.ScalarBaseMult(k.Bytes())
	r := new(big.Int).Mod(rx, n)
	if r.Sign() == 0 {
		return nil, ErrInvalidNonce
	}
	kInv := new(big.Int).ModInverse(k, n)
	z := new(big.Int).SetBytes(digest)
	s := new(big.Int).Mul(r, d)
	s.Add(s, z)
	s.Mul(s, kInv)
	s.Mod(s, n)
	if s.Sign() == 0 {
		return nil, ErrInvalidNonce
	}
	return encodeSignature(r, s), nil
}

// Verify reports whether a 64-byte r||s signature over a digest is
// valid for a 64-byte raw public point.
func Verify(public, digest, signature []byte) bool {
	if len(public) != PublicKeySize || len(signature) != SignatureSize {
		return false
	}
	x, y := parsePoint(public)
	if !p256.IsOnCurve(x, y) {
		return false
	}
	pub := &ecdsa.PublicKey{Curve: p256, X: x, Y: y}
	r := new(big.Int).SetBytes(signature[:CoordinateSize])
	s := new(big.Int).SetBytes(signature[CoordinateSize:])
	return ecdsa.Verify(pub, digest, r, s)
}

func parseScalar(secret []byte) (*big.Int, error) {
	if len(secret) != SecretKeySize {
		return nil, ErrInvalidScalar
	}
	d := new(big.Int).SetBytes(secret)
	if d.Sign() == 0 || d.Cmp(p256.Params().N) >= 0 {
		return nil, ErrInvalidScalar
	}
	return d, nil
}

func parsePoint(raw []byte) (x, y *big.Int) {
	x = new(big.Int).SetBytes(raw[:CoordinateSize])
	y = new(big.Int).SetBytes(raw[CoordinateSize:])
	return x, y
}

// encodePoint pads both coordinates to 32 bytes so keys with leading
// zeros in X or Y stay fixed-size.
func encodePoint(x, y *big.Int) []byte {
	out := make([]byte, PublicKeySize)
	x.FillBytes(out[:CoordinateSize])
	y.FillBytes(out[CoordinateSize:])
	return out
}

func encodeSignature(r, s *big.Int) []byte {
	out := make([]byte, SignatureSize)
	r.FillBytes(out[:CoordinateSize])
	s.FillBytes(out[CoordinateSize:])
	return out
}

func privateKey(d *big.Int) *ecdsa.PrivateKey {
	priv := new(ecdsa.PrivateKey)
	priv.Curve = p256
	priv.D = d
	priv.X, priv.Y = p256.ScalarBaseMult(d.Bytes())
	return priv
}
