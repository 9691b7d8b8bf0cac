// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-vault-warden server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgInvalidTarget is returned when a proposal names an empty or
	// all-zero target address.
	MsgInvalidTarget = "invalid target address"

	// MsgDuplicateRequest is returned when a proposal's content-addressed id
	// already exists under the vault, whatever its status. Terminal ids are
	// never reusable.
	MsgDuplicateRequest = "duplicate request"

	// MsgRequestNotFound is returned when a trigger, cancel, or read targets
	// a request id unknown under the given vault.
	MsgRequestNotFound = "request not found"

	// MsgDelayNotElapsed is returned when a trigger arrives before the
	// request's maturity instant.
	MsgDelayNotElapsed = "delay has not elapsed"

	// MsgAlreadyTerminal is returned when a trigger or cancel targets a
	// request that already reached a terminal status.
	MsgAlreadyTerminal = "request is already executed or cancelled"

	// MsgUnauthorized is returned when the authorization policy rejects the
	// caller for the attempted lifecycle operation.
	MsgUnauthorized = "caller is not authorized"

	// MsgSignatureInvalid is returned when a supplied or stored proof fails
	// cryptographic verification against the operation digest.
	MsgSignatureInvalid = "signature verification failed"

	// MsgSignerNotOwner is returned when a proof verifies but its signer is
	// not currently an owner of the vault.
	MsgSignerNotOwner = "signer is not a vault owner"

	// MsgDelayTooLong is returned when a vault attempts to set a delay above
	// the configured maximum.
	MsgDelayTooLong = "delay exceeds the allowed maximum"

	// MsgExecutionFailed is returned when the vault capability reported
	// failure for a triggered request. The request stays executed; the
	// operation must be re-proposed under a new id.
	MsgExecutionFailed = "vault execution failed"

	// MsgCancelNotSupported is returned when a cancel is attempted under the
	// allowlist policy, which exposes no cancel path.
	MsgCancelNotSupported = "cancellation is not supported by this policy"

	// MsgNotTheVault is returned when a governance operation (set delay,
	// add/remove proposer) is attempted by a caller other than the vault
	// itself.
	MsgNotTheVault = "caller is not the vault"
)
