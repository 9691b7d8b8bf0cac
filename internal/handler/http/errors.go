// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinels for the auth middleware's "Authorization" header parsing.
// Matched with [errors.Is].
var (
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader means the header could not be split
	// into a scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken means the scheme prefix was present but the token
	// value itself was empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
