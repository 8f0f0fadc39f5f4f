package event

// SignRequest asks for an ECDSA signature over the SHA-256 digest of
// Message. A non-empty Ephemeral forces that nonce for deterministic
// signing; reusing it across different messages under the same secret
// leaks the secret, which is the requester's obligation.
type SignRequest struct {
	RequestID string `cbor:"request_id"`
	SecretKey []byte `cbor:"secret_key"`
	Message   []byte `cbor:"message"`
	Ephemeral []byte `cbor:"ephemeral,omitempty"`
}

// SignResult carries the 64-byte r||s signature.
type SignResult struct {
	Result
	Signature []byte `cbor:"signature,omitempty"`
}

// VerifyRequest asks whether Signature verifies Message under
// PublicKey, which may be in any accepted encoding.
type VerifyRequest struct {
	RequestID string `cbor:"request_id"`
	PublicKey []byte `cbor:"public_key"`
	Message   []byte `cbor:"message"`
	Signature []byte `cbor:"signature"`
}

// VerifyResult carries the verification outcome. Valid=false under a
// success result type means the signature simply does not match.
type VerifyResult struct {
	Result
	Valid bool `cbor:"valid"`
}
