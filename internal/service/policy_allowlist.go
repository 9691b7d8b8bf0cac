package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/models"
)

// allowlistPolicy authorizes callers by per-vault allowlist membership.
// Membership is necessary and sufficient for propose and trigger; there is
// no cancel path. Every decision reads current membership from the store —
// a proposer removed after proposing loses the ability to trigger their own
// pending request.
type allowlistPolicy struct {
	proposers store.ProposerRepository
	logger    *logger.Logger
}

// NewAllowlistPolicy constructs the allowlist [AuthorizationPolicy] over the
// given membership repository.
func NewAllowlistPolicy(proposers store.ProposerRepository, logger *logger.Logger) AuthorizationPolicy {
	logger.Debug().Msg("creating allowlist authorization policy")
	return &allowlistPolicy{
		proposers: proposers,
		logger:    logger,
	}
}

// Name implements [AuthorizationPolicy].
func (p *allowlistPolicy) Name() string {
	return config.PolicyAllowlist
}

// AuthorizeProposal approves a proposal when the caller is currently on the
// vault's allowlist. Any supplied proof is ignored; the returned signer is
// the zero identity, so the request id binds vault and payload only.
func (p *allowlistPolicy) AuthorizeProposal(ctx context.Context, vaultID models.Identity, caller models.Identity, digest []byte, proof *models.Proof) (models.Identity, error) {
	if err := p.requireMembership(ctx, vaultID, caller, "AuthorizeProposal"); err != nil {
		return models.ZeroIdentity, err
	}

	return models.ZeroIdentity, nil
}

// AuthorizeTrigger re-checks current allowlist membership. No cryptographic
// check is involved; the stored request carries no proof under this policy.
func (p *allowlistPolicy) AuthorizeTrigger(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error {
	return p.requireMembership(ctx, vaultID, caller, "AuthorizeTrigger")
}

// AuthorizeCancel always fails: the allowlist policy exposes no cancel path.
// An unwanted pending request simply expires by never being triggered.
func (p *allowlistPolicy) AuthorizeCancel(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error {
	return ErrCancelNotSupported
}

func (p *allowlistPolicy) requireMembership(ctx context.Context, vaultID models.Identity, caller models.Identity, op string) error {
	log := logger.FromContext(ctx)

	member, err := p.proposers.IsProposer(ctx, vaultID, caller)
	if err != nil {
		log.Err(err).
			Str("func", "allowlistPolicy."+op).
			Str("vault_id", string(vaultID)).
			Str("caller", string(caller)).
			Msg("allowlist membership check failed")
		return fmt.Errorf("allowlist membership check failed: %w", err)
	}

	if !member {
		log.Warn().
			Str("func", "allowlistPolicy."+op).
			Str("vault_id", string(vaultID)).
			Str("caller", string(caller)).
			Msg("caller is not on the vault's allowlist")
		return ErrUnauthorized
	}

	return nil
}
