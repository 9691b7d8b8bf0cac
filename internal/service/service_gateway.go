package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/adapter"
	"github.com/MKhiriev/go-vault-warden/internal/crypto"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/models"
)

// gatewayService is the concrete implementation of [GatewayService].
//
// Every public operation runs its checks in a fixed order — existence,
// status, maturity, authorization — and authorization is always derived
// fresh by the active policy, never replayed from proposal time. The
// Executed status is committed before the vault capability is invoked, so a
// request runs at most once even if the invocation re-enters the gateway.
type gatewayService struct {
	requests store.RequestRepository
	delays   DelayService
	policy   AuthorizationPolicy
	verifier crypto.IdentityVerifier
	vault    adapter.VaultClient
	events   *eventRecorder

	// now is injectable for tests; production uses time.Now.
	now func() time.Time

	logger *logger.Logger
}

// NewGatewayService constructs a [GatewayService] wired to the given
// repositories, authorization policy and vault capability.
func NewGatewayService(
	requests store.RequestRepository,
	delays DelayService,
	policy AuthorizationPolicy,
	verifier crypto.IdentityVerifier,
	vault adapter.VaultClient,
	events store.EventRepository,
	logger *logger.Logger,
) GatewayService {
	logger.Debug().Str("policy", policy.Name()).Msg("creating gateway service")
	return &gatewayService{
		requests: requests,
		delays:   delays,
		policy:   policy,
		verifier: verifier,
		vault:    vault,
		events:   newEventRecorder(events, logger),
		now:      time.Now,
		logger:   logger,
	}
}

// Propose validates the payload, asks the active policy to approve the
// proposer, derives the content-addressed request id and stores a new
// pending request.
//
// The id is deterministic over the vault identity, the payload and — under
// the signed-owner policy — the recovered signer, so racing proposals of
// the same content are serialised by the registry: exactly one succeeds,
// the rest observe [store.ErrDuplicateRequest]. A cancelled or executed id
// can never be re-proposed.
func (g *gatewayService) Propose(ctx context.Context, caller models.Identity, vaultID models.Identity, payload models.Payload, proof *models.Proof) (models.Request, error) {
	log := logger.FromContext(ctx)

	if err := validateVaultID(vaultID); err != nil {
		return models.Request{}, err
	}
	// normalise before digesting so "" and "0" name the same operation
	if payload.Value == "" {
		payload.Value = "0"
	}
	if err := validatePayload(payload); err != nil {
		log.Warn().
			Str("func", "gatewayService.Propose").
			Str("vault_id", string(vaultID)).
			Str("target", string(payload.Target)).
			Msg("proposal rejected: invalid payload")
		return models.Request{}, err
	}

	digest := g.verifier.DigestFor(vaultID, payload)

	signer, err := g.policy.AuthorizeProposal(ctx, vaultID, caller, digest, proof)
	if err != nil {
		return models.Request{}, err
	}

	request := models.Request{
		VaultID:    vaultID,
		RequestID:  g.verifier.RequestID(vaultID, digest, signer),
		Payload:    payload,
		Status:     models.RequestStatusPending,
		ProposedAt: g.now().UTC(),
	}
	// the proof travels with the request only when it authorizes it
	if !signer.IsZero() {
		request.Proof = proof
	}

	created, err := g.requests.CreateRequest(ctx, request)
	if err != nil {
		return models.Request{}, err
	}

	log.Info().
		Str("func", "gatewayService.Propose").
		Str("vault_id", string(vaultID)).
		Str("request_id", created.RequestID).
		Str("caller", string(caller)).
		Msg("request proposed")

	g.events.record(ctx, vaultID, models.EventRequestCreated, map[string]any{
		"request_id":  created.RequestID,
		"target":      created.Payload.Target,
		"proposed_at": created.ProposedAt,
	})

	return created, nil
}

// Trigger executes a mature pending request.
//
// The delay in force is read live (a vault that lengthened its delay after
// the proposal pushes maturity out) and the maturity boundary is inclusive.
// Maturity is settled before authorization, so an immature request answers
// [ErrDelayNotElapsed] to any caller; only a mature one has its
// authorization re-validated from scratch by the active policy.
// The Executed status is committed before the vault capability is invoked;
// if the downstream call then fails, the request stays Executed and
// [ErrExecutionFailed] is returned — re-proposal is the only way to retry.
func (g *gatewayService) Trigger(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error) {
	log := logger.FromContext(ctx)

	if err := validateVaultID(vaultID); err != nil {
		return models.Request{}, err
	}
	if requestID == "" {
		return models.Request{}, ErrInvalidDataProvided
	}

	request, err := g.requests.GetRequest(ctx, vaultID, requestID)
	if err != nil {
		return models.Request{}, err
	}

	if request.Status.IsTerminal() {
		return models.Request{}, store.ErrInvalidTransition
	}

	delay, err := g.delays.GetDelay(ctx, vaultID)
	if err != nil {
		return models.Request{}, err
	}

	now := g.now()
	if now.Before(request.MatureAt(delay)) {
		log.Warn().
			Str("func", "gatewayService.Trigger").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Time("mature_at", request.MatureAt(delay)).
			Msg("trigger rejected: delay has not elapsed")
		return models.Request{}, ErrDelayNotElapsed
	}

	if err := g.policy.AuthorizeTrigger(ctx, vaultID, caller, request); err != nil {
		return models.Request{}, err
	}

	// commit Executed before invoking the vault: at-most-once even under
	// re-entrancy or a crash between the write and the call
	if err := g.requests.MarkExecuted(ctx, vaultID, requestID); err != nil {
		return models.Request{}, err
	}

	request.Status = models.RequestStatusExecuted
	finalizedAt := now.UTC()
	request.FinalizedAt = &finalizedAt

	success, execErr := g.vault.Execute(ctx, vaultID, request.Payload)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "gatewayService.Trigger").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Msg("vault invocation failed after status commit")
		return request, fmt.Errorf("%w: %w", ErrExecutionFailed, execErr)
	}
	if !success {
		log.Warn().
			Str("func", "gatewayService.Trigger").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Msg("vault reported execution failure")
		return request, ErrExecutionFailed
	}

	log.Info().
		Str("func", "gatewayService.Trigger").
		Str("vault_id", string(vaultID)).
		Str("request_id", requestID).
		Msg("request executed")

	return request, nil
}

// Cancel marks a still-pending request cancelled. The active policy decides
// whether a cancel path exists at all ([ErrCancelNotSupported] under the
// allowlist policy) and re-verifies the stored proof under the signed-owner
// policy.
func (g *gatewayService) Cancel(ctx context.Context, caller models.Identity, vaultID models.Identity, requestID string) (models.Request, error) {
	log := logger.FromContext(ctx)

	if err := validateVaultID(vaultID); err != nil {
		return models.Request{}, err
	}
	if requestID == "" {
		return models.Request{}, ErrInvalidDataProvided
	}

	request, err := g.requests.GetRequest(ctx, vaultID, requestID)
	if err != nil {
		return models.Request{}, err
	}

	if request.Status.IsTerminal() {
		return models.Request{}, store.ErrInvalidTransition
	}

	if err := g.policy.AuthorizeCancel(ctx, vaultID, caller, request); err != nil {
		return models.Request{}, err
	}

	if err := g.requests.MarkCancelled(ctx, vaultID, requestID); err != nil {
		return models.Request{}, err
	}

	request.Status = models.RequestStatusCancelled
	finalizedAt := g.now().UTC()
	request.FinalizedAt = &finalizedAt

	log.Info().
		Str("func", "gatewayService.Cancel").
		Str("vault_id", string(vaultID)).
		Str("request_id", requestID).
		Msg("request cancelled")

	g.events.record(ctx, vaultID, models.EventRequestCancelled, map[string]any{
		"request_id": requestID,
	})

	return request, nil
}

// GetRequest returns a single request by its content-addressed id.
func (g *gatewayService) GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error) {
	if err := validateVaultID(vaultID); err != nil {
		return models.Request{}, err
	}
	if requestID == "" {
		return models.Request{}, ErrInvalidDataProvided
	}

	return g.requests.GetRequest(ctx, vaultID, requestID)
}

// ListRequests returns the vault's requests matching the filter.
func (g *gatewayService) ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error) {
	if err := validateVaultID(vaultID); err != nil {
		return nil, err
	}
	if filter.Status != "" && filter.Status != models.RequestStatusPending &&
		filter.Status != models.RequestStatusExecuted && filter.Status != models.RequestStatusCancelled {
		return nil, ErrInvalidDataProvided
	}

	return g.requests.ListRequests(ctx, vaultID, filter)
}

func validateVaultID(vaultID models.Identity) error {
	if vaultID.IsZero() || vaultID.Validate() != nil {
		return ErrInvalidDataProvided
	}
	return nil
}

// validatePayload rejects payloads the vault could never execute: a zero or
// malformed target, an unknown call kind, or a non-numeric value.
func validatePayload(payload models.Payload) error {
	if payload.Target.IsZero() || payload.Target.Validate() != nil {
		return ErrInvalidTarget
	}
	if !payload.CallKind.Valid() {
		return ErrInvalidDataProvided
	}
	if payload.Value == "" {
		return ErrInvalidDataProvided
	}
	for _, c := range payload.Value {
		if c < '0' || c > '9' {
			return ErrInvalidDataProvided
		}
	}
	return nil
}
