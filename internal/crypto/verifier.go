// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the identity-verifier collaborator: operation
// digests, ed25519 proof verification, and content-addressed request ids.
package crypto

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/sha3"

	"github.com/MKhiriev/go-vault-warden/models"
)

// ErrSignatureInvalid is returned when a proof is structurally malformed or
// its signature does not verify against the operation digest.
var ErrSignatureInvalid = errors.New("signature verification failed")

// digestDomain and requestIDDomain separate the two hash usages so a request
// id can never collide with a signable operation digest.
var (
	digestDomain    = []byte("warden/op/v1")
	requestIDDomain = []byte("warden/req/v1")
)

// ed25519Verifier is the production [IdentityVerifier]: SHA3-256 digests over
// a fixed-order length-prefixed encoding, ed25519 signatures, and identities
// derived from the trailing 20 bytes of the public key digest.
type ed25519Verifier struct{}

// NewVerifier constructs the production identity verifier.
// The returned value is stateless and safe for concurrent use.
func NewVerifier() IdentityVerifier {
	return ed25519Verifier{}
}

// DigestFor computes the SHA3-256 digest of one deferred operation.
//
// All variable-length fields are length-prefixed so that no two distinct
// payloads can encode to the same byte stream.
func (ed25519Verifier) DigestFor(vaultID models.Identity, payload models.Payload) []byte {
	h := sha3.New256()
	writeField(h, digestDomain)
	writeField(h, vaultID.Bytes())
	writeField(h, payload.Target.Bytes())
	writeField(h, []byte(payload.Value))
	writeField(h, []byte(payload.CallKind))
	writeField(h, payload.Data)
	return h.Sum(nil)
}

// RecoverSigner verifies proof against digest and derives the signer identity
// from the supplied public key.
//
// The proof must carry a well-formed ed25519 public key and signature;
// any structural defect or failed verification yields [ErrSignatureInvalid].
func (ed25519Verifier) RecoverSigner(digest []byte, proof models.Proof) (models.Identity, error) {
	if len(proof.PublicKey) != ed25519.PublicKeySize {
		return "", ErrSignatureInvalid
	}
	if len(proof.Signature) != ed25519.SignatureSize {
		return "", ErrSignatureInvalid
	}

	if !ed25519.Verify(ed25519.PublicKey(proof.PublicKey), digest, proof.Signature) {
		return "", ErrSignatureInvalid
	}

	return IdentityFromPublicKey(proof.PublicKey), nil
}

// RequestID computes the content-addressed request identifier: the
// hex-encoded SHA3-256 digest of (vault, operation digest, signer).
// Signer is empty for allowlist proposals.
func (ed25519Verifier) RequestID(vaultID models.Identity, digest []byte, signer models.Identity) string {
	h := sha3.New256()
	writeField(h, requestIDDomain)
	writeField(h, vaultID.Bytes())
	writeField(h, digest)
	writeField(h, []byte(signer))
	return hex.EncodeToString(h.Sum(nil))
}

// IdentityFromPublicKey derives an address from an ed25519 public key: the
// trailing 20 bytes of the key's SHA3-256 digest.
func IdentityFromPublicKey(publicKey []byte) models.Identity {
	sum := sha3.Sum256(publicKey)
	return models.IdentityFromBytes(sum[len(sum)-models.IdentityLength:])
}

// writeField writes one length-prefixed field into the running hash.
func writeField(h interface{ Write(p []byte) (int, error) }, field []byte) {
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(field)))
	h.Write(size[:])
	h.Write(field)
}
