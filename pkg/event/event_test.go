package event_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/p256/pkg/event"
	"github.com/luxfi/p256/pkg/p256"
)

func TestErrorCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want event.ErrorCode
	}{
		{p256.ErrInvalidKeyLength, event.ErrorCodeInvalidKeyLength},
		{p256.ErrInvalidEncoding, event.ErrorCodeInvalidEncoding},
		{p256.ErrDecompressionFailed, event.ErrorCodeDecompressionFailed},
		{p256.ErrInvalidSecretKey, event.ErrorCodeInvalidSecretKey},
		{p256.ErrInvalidSignatureLength, event.ErrorCodeInvalidSignature},
		{p256.ErrDerivationFailed, event.ErrorCodeDerivationFailed},
		{p256.ErrSigningFailed, event.ErrorCodeSigningFailed},
		{p256.ErrCompressionFailed, event.ErrorCodeCompressionFailed},
		{p256.ErrKeyGenerationFailed, event.ErrorCodeKeygenFailed},
		{errors.New("something else"), event.ErrorCodeInternal},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, event.ErrorCodeFor(tc.err))
	}
}

func TestErrorCodeForWrappedError(t *testing.T) {
	// Core errors arrive wrapped with context; mapping must see through.
	wrapped := errors.Join(p256.ErrDerivationFailed, errors.New("scalar is zero"))
	assert.Equal(t, event.ErrorCodeDerivationFailed, event.ErrorCodeFor(wrapped))
}

func TestSignRequestRoundTrip(t *testing.T) {
	in := event.SignRequest{
		RequestID: "r-1",
		SecretKey: []byte{0x01, 0x02},
		Message:   []byte("hello"),
		Ephemeral: []byte{0x03},
	}
	data, err := event.Marshal(in)
	require.NoError(t, err)

	var out event.SignRequest
	require.NoError(t, event.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestResultEmbeddingFlattens(t *testing.T) {
	res := event.SignResult{
		Result:    event.Failure("r-2", p256.ErrInvalidSecretKey),
		Signature: nil,
	}
	data, err := event.Marshal(res)
	require.NoError(t, err)

	// A decoder that only knows the common half still sees the fields.
	var common event.Result
	require.NoError(t, event.Unmarshal(data, &common))
	assert.Equal(t, "r-2", common.RequestID)
	assert.Equal(t, event.ResultTypeError, common.ResultType)
	assert.Equal(t, event.ErrorCodeInvalidSecretKey, common.ErrorCode)
}
