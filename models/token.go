package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token (header.payload.signature)
// ready to be transmitted in HTTP headers.
//
// Address is a cached, parsed copy of the "sub" (subject) claim: the caller
// identity the token authenticates. It is populated during token construction
// or after a successful [Token.GetAddress] call.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`

	// Address is the caller identity extracted from the "sub" claim.
	// Excluded from JSON serialization; it is an internal server-side cache.
	Address Identity `json:"-"`
}

// GetAddress extracts the caller identity from the token's "sub" (subject)
// claim, validates it as a well-formed address, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or not a valid
// identity string.
func (t *Token) GetAddress() (Identity, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting address from token: %w", err)
	}

	address, err := ParseIdentity(subject)
	if err != nil {
		return "", fmt.Errorf("error parsing address from token subject: %w", err)
	}

	return address, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
