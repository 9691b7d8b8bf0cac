package service

import "errors"

// Request lifecycle and authorization errors returned by the gateway and
// delay services. Handlers map these to HTTP statuses; callers should use
// [errors.Is] to match against them.
var (
	// ErrInvalidTarget is returned when a proposal names a zero or malformed
	// target address, or carries an otherwise malformed payload.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrDelayNotElapsed is returned when a trigger arrives before the
	// request's maturity instant. The boundary is inclusive: triggering at
	// exactly proposedAt + delay succeeds.
	ErrDelayNotElapsed = errors.New("delay has not elapsed")

	// ErrUnauthorized is returned when the active authorization policy
	// rejects the caller.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrSignatureInvalid is returned when a supplied or stored proof fails
	// cryptographic verification.
	ErrSignatureInvalid = errors.New("signature is invalid")

	// ErrSignerNotOwner is returned when a proof verifies but its signer is
	// not currently one of the vault's owners. Ownership is consulted live
	// at every lifecycle point, so a signer removed during the delay window
	// permanently loses the ability to trigger or cancel.
	ErrSignerNotOwner = errors.New("signer is not a vault owner")

	// ErrDelayTooLong is returned when a vault attempts to set a delay
	// above the configured maximum.
	ErrDelayTooLong = errors.New("delay exceeds the allowed maximum")

	// ErrExecutionFailed is returned when the vault capability reports that
	// the deferred call itself failed. The request is already Executed at
	// this point; re-proposal is the only way to run the operation again.
	ErrExecutionFailed = errors.New("vault execution failed")

	// ErrCancelNotSupported is returned by the cancel operation under the
	// allowlist policy, which exposes no cancel path.
	ErrCancelNotSupported = errors.New("cancel is not supported by the active policy")

	// ErrNotTheVault is returned when a settings-mutating operation is
	// attempted by a caller that is not the vault itself.
	ErrNotTheVault = errors.New("caller is not the vault")

	// ErrProofRequired is returned when a signed-owner proposal arrives
	// without a proof.
	ErrProofRequired = errors.New("proof is required")

	// ErrInvalidDataProvided is returned when an operation receives
	// structurally invalid input (empty vault id, malformed request id, …).
	ErrInvalidDataProvided = errors.New("invalid data provided")
)

// Token and configuration errors.
var (
	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised error for any JWT
	// validation failure: expired, wrong issuer, bad signature, malformed
	// subject.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrVersionIsNotSpecified is returned at construction time when the
	// application version is missing from the configuration.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrUnknownPolicy is returned at construction time when the configured
	// authorization policy name is not recognised.
	ErrUnknownPolicy = errors.New("unknown authorization policy")
)
