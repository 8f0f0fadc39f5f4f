package event

// KeygenRequest asks for a fresh keypair.
type KeygenRequest struct {
	RequestID string `cbor:"request_id"`
}

// KeygenResult carries a fresh keypair. The secret key travels back to
// the requester and is never retained by the service.
type KeygenResult struct {
	Result
	SecretKey []byte `cbor:"secret_key,omitempty"`
	PublicKey []byte `cbor:"public_key,omitempty"`
}

// DeriveRequest asks for the public key of a 32-byte secret.
type DeriveRequest struct {
	RequestID string `cbor:"request_id"`
	SecretKey []byte `cbor:"secret_key"`
}

// DeriveResult carries the derived 64-byte raw public key.
type DeriveResult struct {
	Result
	PublicKey []byte `cbor:"public_key,omitempty"`
}

// ValidateRequest asks whether a public key in any accepted encoding
// is a valid curve point.
type ValidateRequest struct {
	RequestID string `cbor:"request_id"`
	PublicKey []byte `cbor:"public_key"`
}

// ValidateResult carries the validation outcome. Valid=false under a
// success result type means the key is well-formed but off-curve.
type ValidateResult struct {
	Result
	Valid bool `cbor:"valid"`
}

// CoordinatesRequest asks for the affine coordinates of a public key.
type CoordinatesRequest struct {
	RequestID string `cbor:"request_id"`
	PublicKey []byte `cbor:"public_key"`
}

// CoordinatesResult carries the two 32-byte coordinates.
type CoordinatesResult struct {
	Result
	X []byte `cbor:"x,omitempty"`
	Y []byte `cbor:"y,omitempty"`
}

// CompressRequest asks for the 33-byte compressed form of a public key.
type CompressRequest struct {
	RequestID string `cbor:"request_id"`
	PublicKey []byte `cbor:"public_key"`
}

// CompressResult carries the compressed key.
type CompressResult struct {
	Result
	Compressed []byte `cbor:"compressed,omitempty"`
}
