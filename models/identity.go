package models

import (
	"encoding/hex"
	"errors"
	"strings"
)

// IdentityLength is the length, in bytes, of a decoded identity.
const IdentityLength = 20

// ErrInvalidIdentity is returned when a string cannot be decoded into a
// well-formed identity (wrong prefix, wrong length, or non-hex characters).
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the address of a participant: a vault, a proposer, a vault
// owner, or any caller of the warden API. It is the lowercase hex encoding of
// a 20-byte value, prefixed with "0x" (42 characters total).
//
// Identities are compared as plain strings, so every identity entering the
// system must first pass through [ParseIdentity] to be normalised.
type Identity string

// ZeroIdentity is the all-zero address. It is never a valid target of an
// operation.
const ZeroIdentity = Identity("0x0000000000000000000000000000000000000000")

// ParseIdentity decodes and normalises a raw identity string.
//
// The input must be "0x" followed by exactly 40 hex digits; letter case is
// accepted on input and normalised to lowercase. Returns [ErrInvalidIdentity]
// on any malformed input.
func ParseIdentity(raw string) (Identity, error) {
	if len(raw) != 2+2*IdentityLength {
		return "", ErrInvalidIdentity
	}
	if raw[0] != '0' || (raw[1] != 'x' && raw[1] != 'X') {
		return "", ErrInvalidIdentity
	}

	normalized := strings.ToLower(raw[2:])
	if _, err := hex.DecodeString(normalized); err != nil {
		return "", ErrInvalidIdentity
	}

	return Identity("0x" + normalized), nil
}

// IdentityFromBytes builds an identity from its 20-byte decoded form.
// Long inputs keep only their trailing [IdentityLength] bytes; this is how
// identities are derived from public-key digests.
func IdentityFromBytes(b []byte) Identity {
	if len(b) > IdentityLength {
		b = b[len(b)-IdentityLength:]
	}

	buf := make([]byte, IdentityLength)
	copy(buf[IdentityLength-len(b):], b)

	return Identity("0x" + hex.EncodeToString(buf))
}

// Validate reports whether the identity is well-formed. It is the method form
// of [ParseIdentity] for identities arriving pre-built (e.g. from the database).
func (i Identity) Validate() error {
	parsed, err := ParseIdentity(string(i))
	if err != nil {
		return err
	}
	if parsed != i {
		// upper-case hex stored somewhere it should not be
		return ErrInvalidIdentity
	}
	return nil
}

// IsZero reports whether the identity is empty or the all-zero address.
func (i Identity) IsZero() bool {
	return i == "" || i == ZeroIdentity
}

// Bytes returns the decoded 20-byte form of the identity.
// Malformed identities yield an all-zero slice.
func (i Identity) Bytes() []byte {
	if len(i) != 2+2*IdentityLength {
		return make([]byte, IdentityLength)
	}

	b, err := hex.DecodeString(string(i[2:]))
	if err != nil {
		return make([]byte, IdentityLength)
	}
	return b
}

// String implements the fmt.Stringer interface.
func (i Identity) String() string {
	return string(i)
}
