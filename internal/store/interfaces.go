package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-warden/models"
)

// RequestRepository persists deferred requests and guards their one-way
// lifecycle. All methods are scoped to a single vault: a request is only
// visible and mutable under the vault identity it was proposed for.
type RequestRepository interface {
	// CreateRequest inserts a new pending request. Returns
	// [ErrDuplicateRequest] if the (vault, request id) pair already exists
	// in any status, including terminal ones.
	CreateRequest(ctx context.Context, request models.Request) (models.Request, error)

	// GetRequest returns the request with the given content-addressed id,
	// or [ErrRequestNotFound].
	GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error)

	// ListRequests returns the vault's requests matching the filter,
	// newest first.
	ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error)

	// MarkExecuted transitions a pending request to executed. Returns
	// [ErrRequestNotFound] if no such request exists and
	// [ErrInvalidTransition] if the request is already terminal.
	MarkExecuted(ctx context.Context, vaultID models.Identity, requestID string) error

	// MarkCancelled transitions a pending request to cancelled, with the
	// same error contract as MarkExecuted.
	MarkCancelled(ctx context.Context, vaultID models.Identity, requestID string) error
}

// SettingsRepository persists per-vault configuration. A vault with no
// settings row has never changed its delay; callers substitute the
// configured default.
type SettingsRepository interface {
	// GetSettings returns the vault's settings row or [ErrSettingsNotFound].
	GetSettings(ctx context.Context, vaultID models.Identity) (models.VaultSettings, error)

	// UpsertDelay creates or replaces the vault's delay and returns the
	// stored settings.
	UpsertDelay(ctx context.Context, vaultID models.Identity, delay time.Duration) (models.VaultSettings, error)
}

// ProposerRepository persists the per-vault allowlist consulted by the
// allowlist authorization policy.
type ProposerRepository interface {
	// AddProposer inserts an allowlist entry. Reports false if the address
	// was already a member (the insert is a no-op then).
	AddProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)

	// RemoveProposer deletes an allowlist entry. Reports false if the
	// address was not a member.
	RemoveProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)

	// IsProposer reports current membership. Consulted live on every
	// authorization decision; results are never cached.
	IsProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error)

	// ListProposers returns the vault's allowlist ordered by insertion time.
	ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error)
}

// EventRepository persists notification events for asynchronous webhook
// delivery.
type EventRepository interface {
	// CreateEvent records a new undispatched event.
	CreateEvent(ctx context.Context, event models.Event) error

	// GetUndispatched returns up to limit events that have not yet been
	// delivered, oldest first.
	GetUndispatched(ctx context.Context, limit int) ([]models.Event, error)

	// MarkDispatched stamps the given events as delivered.
	MarkDispatched(ctx context.Context, eventIDs []string, dispatchedAt time.Time) error
}
