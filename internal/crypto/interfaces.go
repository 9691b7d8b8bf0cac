package crypto

import "github.com/MKhiriev/go-vault-warden/models"

// IdentityVerifier derives operation digests and recovers signer identities
// from cryptographic proofs. It is the only component that inspects proof
// bytes; the rest of the application treats proofs as opaque.
//
// Implementations must be stateless: verification at trigger time must be a
// full re-derivation with no memory of earlier outcomes.
type IdentityVerifier interface {
	// DigestFor computes the canonical digest of one deferred operation.
	// The digest is deterministic over (vault, payload) and is the message
	// a signed-owner proof signs.
	DigestFor(vaultID models.Identity, payload models.Payload) []byte

	// RecoverSigner verifies proof against digest and returns the signer's
	// identity. Returns ErrSignatureInvalid when the proof is malformed or
	// the signature does not verify.
	RecoverSigner(digest []byte, proof models.Proof) (models.Identity, error)

	// RequestID computes the content-addressed request identifier from the
	// vault identity, the operation digest, and — for signed proposals —
	// the recovered signer. A different signer yields a different id, so no
	// signer can adopt another signer's stored proof.
	RequestID(vaultID models.Identity, digest []byte, signer models.Identity) string
}
