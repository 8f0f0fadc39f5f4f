// Package event defines the NATS subjects and the CBOR request/result
// envelopes of the p256 service. Negative cryptographic outcomes (an
// invalid key, a signature that does not verify) travel as successful
// results carrying a boolean; only malformed input and engine failures
// become error results.
package event

import (
	"errors"

	"github.com/fxamacker/cbor/v2"

	"github.com/luxfi/p256/pkg/p256"
)

const (
	KeygenRequestTopic      = "p256.keygen"
	DeriveRequestTopic      = "p256.derive"
	ValidateRequestTopic    = "p256.validate"
	SignRequestTopic        = "p256.sign"
	VerifyRequestTopic      = "p256.verify"
	CoordinatesRequestTopic = "p256.coordinates"
	CompressRequestTopic    = "p256.compress"
)

// ResultType distinguishes successful results from error results.
type ResultType string

const (
	ResultTypeSuccess ResultType = "success"
	ResultTypeError   ResultType = "error"
)

// ErrorCode mirrors the core error taxonomy on the wire.
type ErrorCode string

const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeInvalidKeyLength    ErrorCode = "invalid_key_length"
	ErrorCodeInvalidEncoding     ErrorCode = "invalid_encoding"
	ErrorCodeDecompressionFailed ErrorCode = "decompression_failed"
	ErrorCodeInvalidSecretKey    ErrorCode = "invalid_secret_key"
	ErrorCodeInvalidSignature    ErrorCode = "invalid_signature_length"
	ErrorCodeDerivationFailed    ErrorCode = "derivation_failed"
	ErrorCodeSigningFailed       ErrorCode = "signing_failed"
	ErrorCodeCompressionFailed   ErrorCode = "compression_failed"
	ErrorCodeKeygenFailed        ErrorCode = "keygen_failed"
	ErrorCodeInternal            ErrorCode = "internal_error"
)

// ErrorCodeFor maps a core error to its wire code.
func ErrorCodeFor(err error) ErrorCode {
	switch {
	case errors.Is(err, p256.ErrInvalidKeyLength):
		return ErrorCodeInvalidKeyLength
	case errors.Is(err, p256.ErrInvalidEncoding):
		return ErrorCodeInvalidEncoding
	case errors.Is(err, p256.ErrDecompressionFailed):
		return ErrorCodeDecompressionFailed
	case errors.Is(err, p256.ErrInvalidSecretKey):
		return ErrorCodeInvalidSecretKey
	case errors.Is(err, p256.ErrInvalidSignatureLength):
		return ErrorCodeInvalidSignature
	case errors.Is(err, p256.ErrDerivationFailed):
		return ErrorCodeDerivationFailed
	case errors.Is(err, p256.ErrSigningFailed):
		return ErrorCodeSigningFailed
	case errors.Is(err, p256.ErrCompressionFailed):
		return ErrorCodeCompressionFailed
	case errors.Is(err, p256.ErrKeyGenerationFailed):
		return ErrorCodeKeygenFailed
	}
	return ErrorCodeInternal
}

// Result is the common half of every result event.
type Result struct {
	RequestID   string     `cbor:"request_id"`
	ResultType  ResultType `cbor:"result_type"`
	ErrorCode   ErrorCode  `cbor:"error_code,omitempty"`
	ErrorReason string     `cbor:"error_reason,omitempty"`
}

// Failure builds the error half of a result for a core error.
func Failure(requestID string, err error) Result {
	return Result{
		RequestID:   requestID,
		ResultType:  ResultTypeError,
		ErrorCode:   ErrorCodeFor(err),
		ErrorReason: err.Error(),
	}
}

// Success builds the success half of a result.
func Success(requestID string) Result {
	return Result{RequestID: requestID, ResultType: ResultTypeSuccess}
}

// Marshal encodes an event as CBOR.
func Marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

// Unmarshal decodes a CBOR event.
func Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}
