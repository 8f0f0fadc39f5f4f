package p256

import (
	"fmt"

	"github.com/luxfi/p256/pkg/curve"
)

// Keypair holds a freshly generated secret scalar and its raw public
// point. Both buffers are owned by the caller.
type Keypair struct {
	SecretKey []byte
	PublicKey []byte
}

// GenerateKeypair creates a new keypair using the curve engine's
// CSPRNG. A failure here means the system RNG failed and is not
// retried.
func GenerateKeypair() (*Keypair, error) {
	secret, public, err := curve.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyGenerationFailed, err)
	}
	return &Keypair{SecretKey: secret, PublicKey: public}, nil
}

// DerivePublicKey computes the 64-byte raw public key for a 32-byte
// secret. Derivation is deterministic: the result always matches the
// public half of the keypair the secret came from.
func DerivePublicKey(secret []byte) ([]byte, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSecretKey, len(secret))
	}
	public, err := curve.DerivePublicKey(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return public, nil
}

// ValidatePublicKey normalizes a public key in any encoding and reports
// whether it is a point on the curve other than the identity. A
// well-formed key that fails the curve check is a normal false result,
// not an error; malformed input surfaces the normalizer's error.
func ValidatePublicKey(pub []byte) (bool, error) {
	raw, err := NormalizePublicKey(pub)
	if err != nil {
		return false, err
	}
	return curve.ValidatePublicKey(raw), nil
}
