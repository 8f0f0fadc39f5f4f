package p256

import (
	"crypto/sha256"
	"fmt"

	"github.com/luxfi/p256/pkg/curve"
)

// DigestSize is the byte length of the SHA-256 digest that is actually
// signed and verified in place of the raw message.
const DigestSize = sha256.Size

// Digest returns the SHA-256 digest of a message. Sign and Verify hash
// through this same function, which is what keeps their views of the
// message byte-for-byte identical.
func Digest(message []byte) []byte {
	sum := sha256.Sum256(message)
	return sum[:]
}

// Sign signs the SHA-256 digest of a message with a 32-byte secret key
// and returns the 64-byte r||s signature. The ephemeral nonce is drawn
// internally from the curve engine's CSPRNG.
//
// The secret length is checked before any hashing or engine call.
func Sign(secret, message []byte) ([]byte, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSecretKey, len(secret))
	}
	sig, err := curve.Sign(secret, Digest(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig, nil
}

// SignWithEphemeral signs like Sign but forces the supplied 32-byte
// ephemeral nonce, making the signature reproducible for fixed test
// vectors. A nil ephemeral falls back to Sign.
//
// The caller must never reuse an ephemeral across two different
// messages under the same secret key: doing so allows recovery of the
// secret. This layer does not and cannot enforce that.
func SignWithEphemeral(secret, message, ephemeral []byte) ([]byte, error) {
	if ephemeral == nil {
		return Sign(secret, message)
	}
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSecretKey, len(secret))
	}
	sig, err := curve.SignWithNonce(secret, Digest(message), ephemeral)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig, nil
}

// Verify reports whether a 64-byte r||s signature over the SHA-256
// digest of a message is valid for a public key in any of the three
// accepted encodings. A signature that simply does not match is a
// normal false result; only malformed inputs produce errors.
func Verify(pub, message, signature []byte) (bool, error) {
	raw, err := NormalizePublicKey(pub)
	if err != nil {
		return false, err
	}
	if len(signature) != SignatureSize {
		return false, fmt.Errorf("%w: %d bytes", ErrInvalidSignatureLength, len(signature))
	}
	return curve.Verify(raw, Digest(message), signature), nil
}
