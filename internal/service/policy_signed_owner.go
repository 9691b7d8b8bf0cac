package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-warden/internal/adapter"
	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/crypto"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

// signedOwnerPolicy authorizes requests by cryptographic proof: the proposer
// supplies a signature over the operation digest, the policy recovers the
// signer and asks the vault whether that signer is currently an owner.
//
// The same stored proof is re-verified from scratch at trigger and cancel
// time against the vault's current owner set, never against a cached
// outcome. A signer removed as an owner during the delay window permanently
// loses the ability to trigger or cancel; no alternate signer can adopt the
// stored proof because the request id is bound to the original signer.
//
// The caller parameter is deliberately unused at every lifecycle point:
// the proof is the authorization, so requests may be submitted through any
// relayer.
type signedOwnerPolicy struct {
	verifier crypto.IdentityVerifier
	vault    adapter.VaultClient
	logger   *logger.Logger
}

// NewSignedOwnerPolicy constructs the signed-owner [AuthorizationPolicy]
// over the given verifier and vault capability.
func NewSignedOwnerPolicy(verifier crypto.IdentityVerifier, vault adapter.VaultClient, logger *logger.Logger) AuthorizationPolicy {
	logger.Debug().Msg("creating signed-owner authorization policy")
	return &signedOwnerPolicy{
		verifier: verifier,
		vault:    vault,
		logger:   logger,
	}
}

// Name implements [AuthorizationPolicy].
func (p *signedOwnerPolicy) Name() string {
	return config.PolicySignedOwner
}

// AuthorizeProposal recovers the signer from the supplied proof and checks
// current vault ownership. The recovered identity is returned so that it
// becomes part of the request id's input: a different signer produces a
// different request.
func (p *signedOwnerPolicy) AuthorizeProposal(ctx context.Context, vaultID models.Identity, caller models.Identity, digest []byte, proof *models.Proof) (models.Identity, error) {
	if proof == nil {
		return models.ZeroIdentity, ErrProofRequired
	}

	signer, err := p.verifySigner(ctx, vaultID, digest, *proof, "AuthorizeProposal")
	if err != nil {
		return models.ZeroIdentity, err
	}

	return signer, nil
}

// AuthorizeTrigger re-derives the signer from the request's stored proof and
// re-checks ownership against the vault's current owner set.
func (p *signedOwnerPolicy) AuthorizeTrigger(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error {
	return p.reverify(ctx, vaultID, request, "AuthorizeTrigger")
}

// AuthorizeCancel applies the same full re-verification as trigger: only a
// proof whose signer is still an owner may cancel.
func (p *signedOwnerPolicy) AuthorizeCancel(ctx context.Context, vaultID models.Identity, caller models.Identity, request models.Request) error {
	return p.reverify(ctx, vaultID, request, "AuthorizeCancel")
}

// reverify recomputes the operation digest from the stored payload and runs
// the complete proof check again. Nothing from proposal time is trusted
// except the stored bytes themselves.
func (p *signedOwnerPolicy) reverify(ctx context.Context, vaultID models.Identity, request models.Request, op string) error {
	if request.Proof == nil {
		return ErrProofRequired
	}

	digest := p.verifier.DigestFor(vaultID, request.Payload)

	_, err := p.verifySigner(ctx, vaultID, digest, *request.Proof, op)
	return err
}

func (p *signedOwnerPolicy) verifySigner(ctx context.Context, vaultID models.Identity, digest []byte, proof models.Proof, op string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	signer, err := p.verifier.RecoverSigner(digest, proof)
	if err != nil {
		if errors.Is(err, crypto.ErrSignatureInvalid) {
			log.Warn().
				Str("func", "signedOwnerPolicy."+op).
				Str("vault_id", string(vaultID)).
				Msg("proof failed cryptographic verification")
			return models.ZeroIdentity, ErrSignatureInvalid
		}
		return models.ZeroIdentity, fmt.Errorf("signer recovery failed: %w", err)
	}

	owner, err := p.vault.IsOwner(ctx, vaultID, signer)
	if err != nil {
		log.Err(err).
			Str("func", "signedOwnerPolicy."+op).
			Str("vault_id", string(vaultID)).
			Str("signer", string(signer)).
			Msg("vault ownership check failed")
		return models.ZeroIdentity, fmt.Errorf("vault ownership check failed: %w", err)
	}

	if !owner {
		log.Warn().
			Str("func", "signedOwnerPolicy."+op).
			Str("vault_id", string(vaultID)).
			Str("signer", string(signer)).
			Msg("signer is not a current vault owner")
		return models.ZeroIdentity, ErrSignerNotOwner
	}

	return signer, nil
}
