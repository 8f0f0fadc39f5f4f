package p256_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/p256/pkg/p256"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	message := []byte("the quick brown fox")
	sig, err := p256.Sign(kp.SecretKey, message)
	require.NoError(t, err)
	require.Len(t, sig, p256.SignatureSize)

	for name, pub := range encodings(t, kp.PublicKey) {
		t.Run(name, func(t *testing.T) {
			valid, err := p256.Verify(pub, message, sig)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

func TestSignEmptyMessage(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	sig, err := p256.Sign(kp.SecretKey, nil)
	require.NoError(t, err)

	valid, err := p256.Verify(kp.PublicKey, nil, sig)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = p256.Verify(kp.PublicKey, []byte{}, sig)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyRejectsMutations(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	message := []byte("mutate me")
	sig, err := p256.Sign(kp.SecretKey, message)
	require.NoError(t, err)

	t.Run("flipped signature bit", func(t *testing.T) {
		bad := make([]byte, len(sig))
		copy(bad, sig)
		bad[17] ^= 0x01
		valid, err := p256.Verify(kp.PublicKey, message, bad)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("flipped message bit", func(t *testing.T) {
		bad := make([]byte, len(message))
		copy(bad, message)
		bad[0] ^= 0x01
		valid, err := p256.Verify(kp.PublicKey, bad, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := p256.GenerateKeypair()
		require.NoError(t, err)
		valid, err := p256.Verify(other.PublicKey, message, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestVerifyRejectsMalformedInputs(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)
	message := []byte("msg")
	sig, err := p256.Sign(kp.SecretKey, message)
	require.NoError(t, err)

	_, err = p256.Verify(kp.PublicKey, message, sig[:63])
	assert.ErrorIs(t, err, p256.ErrInvalidSignatureLength)

	_, err = p256.Verify(make([]byte, 10), message, sig)
	assert.ErrorIs(t, err, p256.ErrInvalidKeyLength)

	_, err = p256.Verify(append([]byte{0x01}, kp.PublicKey...), message, sig)
	assert.ErrorIs(t, err, p256.ErrInvalidEncoding)
}

func TestSignRejectsShortSecret(t *testing.T) {
	_, err := p256.Sign(make([]byte, 16), []byte("msg"))
	assert.ErrorIs(t, err, p256.ErrInvalidSecretKey)

	_, err = p256.SignWithEphemeral(make([]byte, 16), []byte("msg"), make([]byte, 32))
	assert.ErrorIs(t, err, p256.ErrInvalidSecretKey)
}

func TestSignWithEphemeralDeterministic(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	message := []byte("fixed vector")
	ephemeral := sha256.Sum256([]byte("ephemeral one"))

	first, err := p256.SignWithEphemeral(kp.SecretKey, message, ephemeral[:])
	require.NoError(t, err)
	second, err := p256.SignWithEphemeral(kp.SecretKey, message, ephemeral[:])
	require.NoError(t, err)
	assert.Equal(t, first, second)

	valid, err := p256.Verify(kp.PublicKey, message, first)
	require.NoError(t, err)
	assert.True(t, valid)

	otherEphemeral := sha256.Sum256([]byte("ephemeral two"))
	third, err := p256.SignWithEphemeral(kp.SecretKey, message, otherEphemeral[:])
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestSignWithEphemeralNilFallsBackToRandom(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	message := []byte("random nonce")
	first, err := p256.SignWithEphemeral(kp.SecretKey, message, nil)
	require.NoError(t, err)
	second, err := p256.SignWithEphemeral(kp.SecretKey, message, nil)
	require.NoError(t, err)

	// Random nonces make signature collisions on the same message
	// cryptographically impossible.
	assert.NotEqual(t, first, second)

	valid, err := p256.Verify(kp.PublicKey, message, first)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestSignWithEphemeralRejectsDegenerateNonce(t *testing.T) {
	kp, err := p256.GenerateKeypair()
	require.NoError(t, err)

	_, err = p256.SignWithEphemeral(kp.SecretKey, []byte("msg"), make([]byte, 32))
	assert.ErrorIs(t, err, p256.ErrSigningFailed)

	_, err = p256.SignWithEphemeral(kp.SecretKey, []byte("msg"), []byte{0x01, 0x02})
	assert.ErrorIs(t, err, p256.ErrSigningFailed)
}

func TestDigest(t *testing.T) {
	want := sha256.Sum256([]byte("abc"))
	assert.Equal(t, want[:], p256.Digest([]byte("abc")))
	assert.Len(t, p256.Digest(nil), p256.DigestSize)
}
