package p256

import "errors"

var (
	// ErrInvalidKeyLength is returned when a public key is not 64, 65,
	// or 33 bytes long.
	ErrInvalidKeyLength = errors.New("invalid public key length")

	// ErrInvalidEncoding is returned when a 65-byte key does not start
	// with 0x04 or a 33-byte key does not start with 0x02 or 0x03.
	ErrInvalidEncoding = errors.New("invalid public key prefix")

	// ErrDecompressionFailed is returned when a well-formed compressed
	// key encodes an X with no corresponding curve point.
	ErrDecompressionFailed = errors.New("could not decompress public key")

	// ErrInvalidSecretKey is returned when a secret key is not exactly
	// 32 bytes long.
	ErrInvalidSecretKey = errors.New("invalid size for secret key")

	// ErrInvalidSignatureLength is returned when a signature is not
	// exactly 64 bytes long.
	ErrInvalidSignatureLength = errors.New("invalid size for signature")

	// ErrDerivationFailed is returned when the curve engine rejects a
	// secret scalar (zero or out of range).
	ErrDerivationFailed = errors.New("could not derive public key")

	// ErrSigningFailed is returned when the curve engine cannot produce
	// a signature, e.g. for a degenerate ephemeral nonce.
	ErrSigningFailed = errors.New("could not sign message")

	// ErrCompressionFailed is returned when the curve engine cannot
	// compress a normalized public key.
	ErrCompressionFailed = errors.New("could not compress public key")

	// ErrKeyGenerationFailed is returned when keypair generation fails,
	// which only happens when the system RNG does.
	ErrKeyGenerationFailed = errors.New("could not generate keypair")
)
