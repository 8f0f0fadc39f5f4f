package curve_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/p256/pkg/curve"
)

func TestGenerateKeypair(t *testing.T) {
	secret, public, err := curve.GenerateKeypair()
	require.NoError(t, err)
	assert.Len(t, secret, curve.SecretKeySize)
	assert.Len(t, public, curve.PublicKeySize)
	assert.True(t, curve.ValidatePublicKey(public))
}

func TestDerivePublicKey(t *testing.T) {
	secret, public, err := curve.GenerateKeypair()
	require.NoError(t, err)

	derived, err := curve.DerivePublicKey(secret)
	require.NoError(t, err)
	assert.Equal(t, public, derived)
}

func TestDerivePublicKeyRejectsBadScalars(t *testing.T) {
	zero := make([]byte, curve.SecretKeySize)
	_, err := curve.DerivePublicKey(zero)
	assert.ErrorIs(t, err, curve.ErrInvalidScalar)

	overflow := bytes.Repeat([]byte{0xff}, curve.SecretKeySize)
	_, err = curve.DerivePublicKey(overflow)
	assert.ErrorIs(t, err, curve.ErrInvalidScalar)

	_, err = curve.DerivePublicKey([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, curve.ErrInvalidScalar)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	_, public, err := curve.GenerateKeypair()
	require.NoError(t, err)

	compressed, err := curve.CompressPublicKey(public)
	require.NoError(t, err)
	require.Len(t, compressed, curve.CompressedSize)
	assert.Contains(t, []byte{0x02, 0x03}, compressed[0])

	recovered, err := curve.DecompressPublicKey(compressed)
	require.NoError(t, err)
	assert.Equal(t, public, recovered)
}

func TestDecompressRejectsInvalidX(t *testing.T) {
	// An X at the field prime or above has no corresponding point.
	bad := append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)
	_, err := curve.DecompressPublicKey(bad)
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)
}

func TestSignVerify(t *testing.T) {
	secret, public, err := curve.GenerateKeypair()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("engine test message"))
	sig, err := curve.Sign(secret, digest[:])
	require.NoError(t, err)
	require.Len(t, sig, curve.SignatureSize)

	assert.True(t, curve.Verify(public, digest[:], sig))

	otherDigest := sha256.Sum256([]byte("a different message"))
	assert.False(t, curve.Verify(public, otherDigest[:], sig))
}

func TestSignWithNonceDeterministic(t *testing.T) {
	secret, public, err := curve.GenerateKeypair()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("deterministic"))
	nonce := sha256.Sum256([]byte("nonce one"))

	first, err := curve.SignWithNonce(secret, digest[:], nonce[:])
	require.NoError(t, err)
	second, err := curve.SignWithNonce(secret, digest[:], nonce[:])
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, curve.Verify(public, digest[:], first))

	otherNonce := sha256.Sum256([]byte("nonce two"))
	third, err := curve.SignWithNonce(secret, digest[:], otherNonce[:])
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.True(t, curve.Verify(public, digest[:], third))
}

func TestSignWithNonceRejectsDegenerateNonces(t *testing.T) {
	secret, _, err := curve.GenerateKeypair()
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("msg"))

	_, err = curve.SignWithNonce(secret, digest[:], make([]byte, curve.NonceSize))
	assert.ErrorIs(t, err, curve.ErrInvalidNonce)

	_, err = curve.SignWithNonce(secret, digest[:], []byte{0x01})
	assert.ErrorIs(t, err, curve.ErrInvalidNonce)

	overflow := bytes.Repeat([]byte{0xff}, curve.NonceSize)
	_, err = curve.SignWithNonce(secret, digest[:], overflow)
	assert.ErrorIs(t, err, curve.ErrInvalidNonce)
}

func TestValidatePublicKeyRejectsOffCurve(t *testing.T) {
	assert.False(t, curve.ValidatePublicKey(make([]byte, curve.PublicKeySize)))

	offCurve := make([]byte, curve.PublicKeySize)
	offCurve[31] = 0x01 // x = 1
	offCurve[63] = 0x01 // y = 1, not a solution of the curve equation
	assert.False(t, curve.ValidatePublicKey(offCurve))
}
