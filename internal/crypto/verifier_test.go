// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-warden/models"
)

var testVault = models.Identity("0x00000000000000000000000000000000000000aa")

func testPayload() models.Payload {
	return models.Payload{
		Target:   "0x00000000000000000000000000000000000000bb",
		Value:    "10",
		Data:     []byte{0xde, 0xad},
		CallKind: models.CallKindCall,
	}
}

func signedProof(t *testing.T, digest []byte) (models.Proof, models.Identity) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return models.Proof{
		PublicKey: pub,
		Signature: ed25519.Sign(priv, digest),
	}, IdentityFromPublicKey(pub)
}

func TestDigestFor_Deterministic(t *testing.T) {
	v := NewVerifier()

	d1 := v.DigestFor(testVault, testPayload())
	d2 := v.DigestFor(testVault, testPayload())

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 32)
}

func TestDigestFor_SensitiveToEveryField(t *testing.T) {
	v := NewVerifier()
	base := v.DigestFor(testVault, testPayload())

	mutations := map[string]models.Payload{}

	p := testPayload()
	p.Target = "0x00000000000000000000000000000000000000cc"
	mutations["target"] = p

	p = testPayload()
	p.Value = "11"
	mutations["value"] = p

	p = testPayload()
	p.Data = []byte{0xde, 0xae}
	mutations["data"] = p

	p = testPayload()
	p.CallKind = models.CallKindDelegate
	mutations["call kind"] = p

	for name, payload := range mutations {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base, v.DigestFor(testVault, payload))
		})
	}

	t.Run("vault", func(t *testing.T) {
		other := models.Identity("0x00000000000000000000000000000000000000ff")
		assert.NotEqual(t, base, v.DigestFor(other, testPayload()))
	})
}

func TestDigestFor_NoFieldBoundaryCollision(t *testing.T) {
	v := NewVerifier()

	// shifting a byte between adjacent variable-length fields must change
	// the digest; this is what the length prefixes guarantee
	a := testPayload()
	a.Value = "10a"
	a.Data = []byte("bc")

	b := testPayload()
	b.Value = "10"
	b.Data = []byte("abc")

	assert.NotEqual(t, v.DigestFor(testVault, a), v.DigestFor(testVault, b))
}

func TestRecoverSigner_Success(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())

	proof, wantSigner := signedProof(t, digest)

	signer, err := v.RecoverSigner(digest, proof)
	require.NoError(t, err)
	assert.Equal(t, wantSigner, signer)
	require.NoError(t, signer.Validate())
}

func TestRecoverSigner_BadSignature(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())

	proof, _ := signedProof(t, digest)
	proof.Signature[0] ^= 0xff

	_, err := v.RecoverSigner(digest, proof)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestRecoverSigner_WrongDigest(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())
	proof, _ := signedProof(t, digest)

	other := testPayload()
	other.Value = "999"

	_, err := v.RecoverSigner(v.DigestFor(testVault, other), proof)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestRecoverSigner_MalformedProof(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())
	good, _ := signedProof(t, digest)

	tests := []struct {
		name  string
		proof models.Proof
	}{
		{name: "short public key", proof: models.Proof{PublicKey: good.PublicKey[:16], Signature: good.Signature}},
		{name: "short signature", proof: models.Proof{PublicKey: good.PublicKey, Signature: good.Signature[:32]}},
		{name: "empty proof", proof: models.Proof{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.RecoverSigner(digest, tt.proof)
			assert.ErrorIs(t, err, ErrSignatureInvalid)
		})
	}
}

func TestRequestID_BoundToSigner(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())

	_, signerA := signedProof(t, digest)
	_, signerB := signedProof(t, digest)

	idA := v.RequestID(testVault, digest, signerA)
	idB := v.RequestID(testVault, digest, signerB)
	idNone := v.RequestID(testVault, digest, "")

	assert.NotEqual(t, idA, idB, "same operation signed by different owners must yield different ids")
	assert.NotEqual(t, idA, idNone)
	assert.Len(t, idA, 64)
}

func TestRequestID_Deterministic(t *testing.T) {
	v := NewVerifier()
	digest := v.DigestFor(testVault, testPayload())

	assert.Equal(t,
		v.RequestID(testVault, digest, ""),
		v.RequestID(testVault, digest, ""),
	)
}

func TestIdentityFromPublicKey_StableAndValid(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	id1 := IdentityFromPublicKey(pub)
	id2 := IdentityFromPublicKey(pub)

	assert.Equal(t, id1, id2)
	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
}
