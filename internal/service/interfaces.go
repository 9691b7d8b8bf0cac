package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-warden/models"
)

// GatewayService orchestrates the deferred-request lifecycle: it validates
// authorization, enforces maturity, guards the one-way status machine and
// invokes the vault capability exactly once per request.
type GatewayService interface {
	// Propose validates the payload, asks the active authorization policy to
	// approve the proposer, derives the content-addressed request id and
	// stores a new pending request.
	Propose(ctx context.Context, caller models.Identity, vaultID models.Identity, payload models.Payload, proof *models.Proof) (models.Request, error)

	// Trigger re-validates authorization from scratch, checks that the
	// request's delay window has elapsed, commits the Executed status and
	// then invokes the vault capability.
	Trigger(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error)

	// Cancel marks a still-pending request cancelled. Only the signed-owner
	// policy exposes a cancel path.
	Cancel(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error)

	// GetRequest returns a single request by its content-addressed id.
	GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error)

	// ListRequests returns the vault's requests matching the filter.
	ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error)
}

// DelayService manages the per-vault delay and allowlist. Mutations are
// self-governed: only a caller proven to be the vault itself may change its
// settings.
type DelayService interface {
	// GetDelay returns the vault's current delay, falling back to the
	// configured default when the vault has never set one.
	GetDelay(ctx context.Context, vaultID models.Identity) (time.Duration, error)

	// SetDelay replaces the vault's delay. Fails with [ErrDelayTooLong]
	// when newDelay exceeds the configured maximum and with [ErrNotTheVault]
	// when the caller is not the vault.
	SetDelay(ctx context.Context, caller models.Identity, vaultID models.Identity, newDelay time.Duration) (models.VaultSettings, error)

	// AddProposer adds an identity to the vault's allowlist (vault only).
	AddProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error

	// RemoveProposer removes an identity from the vault's allowlist
	// (vault only).
	RemoveProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error

	// ListProposers returns the vault's allowlist.
	ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error)
}

// AuthorizationPolicy decides who may create, trigger and cancel a request.
// Two interchangeable implementations exist: the allowlist policy and the
// signed-owner policy. Every decision is derived fresh from current state —
// no verification outcome is ever cached between lifecycle points.
type AuthorizationPolicy interface {
	// Name returns the policy's configuration name.
	Name() string

	// AuthorizeProposal approves a new proposal and returns the signer
	// identity that becomes part of the request id's input. The allowlist
	// policy returns the zero identity (the id binds vault and payload
	// only); the signed-owner policy returns the identity recovered from
	// the proof.
	AuthorizeProposal(ctx context.Context, vaultID models.Identity, caller models.Identity, digest []byte, proof *models.Proof) (models.Identity, error)

	// AuthorizeTrigger re-validates that the caller (or the stored proof's
	// signer) is still authorized to trigger the request.
	AuthorizeTrigger(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error

	// AuthorizeCancel re-validates cancellation rights, or reports that the
	// policy exposes no cancel path.
	AuthorizeCancel(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error
}

// AuthService issues and validates the JWTs that authenticate API callers.
type AuthService interface {
	// CreateToken issues a signed JWT whose subject is the given address.
	CreateToken(ctx context.Context, address models.Identity) (models.Token, error)

	// ParseToken validates a raw JWT string and returns the decoded token
	// with the caller identity extracted from its subject.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
