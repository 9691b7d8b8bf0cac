package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/config"
	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/internal/store"
	"github.com/MKhiriev/go-vault-warden/models"
)

// VaultPredicate proves that a caller is the vault itself. Settings-mutating
// operations run it before touching storage; the default predicate is plain
// identity equality.
type VaultPredicate func(vaultID models.Identity, caller models.Identity) bool

// CallerIsVault is the default [VaultPredicate]: the caller governs a vault
// exactly when it authenticates as that vault's own identity.
func CallerIsVault(vaultID models.Identity, caller models.Identity) bool {
	return !caller.IsZero() && vaultID == caller
}

// delayService is the concrete implementation of [DelayService]. It owns the
// per-vault delay and allowlist, both mutable only by the vault itself.
type delayService struct {
	settings  store.SettingsRepository
	proposers store.ProposerRepository
	events    *eventRecorder

	isVault      VaultPredicate
	defaultDelay time.Duration
	maxDelay     time.Duration

	logger *logger.Logger
}

// NewDelayService constructs a [DelayService] over the given repositories.
// The delay bounds come from cfg; isVault gates every mutation.
func NewDelayService(
	settings store.SettingsRepository,
	proposers store.ProposerRepository,
	events store.EventRepository,
	cfg config.App,
	isVault VaultPredicate,
	logger *logger.Logger,
) DelayService {
	logger.Debug().
		Dur("default_delay", cfg.DefaultDelay).
		Dur("max_delay", cfg.MaxDelay).
		Msg("creating delay service")
	return &delayService{
		settings:     settings,
		proposers:    proposers,
		events:       newEventRecorder(events, logger),
		isVault:      isVault,
		defaultDelay: cfg.DefaultDelay,
		maxDelay:     cfg.MaxDelay,
		logger:       logger,
	}
}

// GetDelay returns the vault's current delay. A vault that has never set
// one uses the configured default.
func (s *delayService) GetDelay(ctx context.Context, vaultID models.Identity) (time.Duration, error) {
	if err := validateVaultID(vaultID); err != nil {
		return 0, err
	}

	settings, err := s.settings.GetSettings(ctx, vaultID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return s.defaultDelay, nil
		}
		return 0, err
	}

	return settings.Delay, nil
}

// SetDelay replaces the vault's delay. The bound on newDelay prevents a
// compromised governance step from locking funds behind an unbounded wait.
func (s *delayService) SetDelay(ctx context.Context, caller models.Identity, vaultID models.Identity, newDelay time.Duration) (models.VaultSettings, error) {
	log := logger.FromContext(ctx)

	if err := validateVaultID(vaultID); err != nil {
		return models.VaultSettings{}, err
	}
	if !s.isVault(vaultID, caller) {
		log.Warn().
			Str("func", "delayService.SetDelay").
			Str("vault_id", string(vaultID)).
			Str("caller", string(caller)).
			Msg("delay change rejected: caller is not the vault")
		return models.VaultSettings{}, ErrNotTheVault
	}
	if newDelay < 0 {
		return models.VaultSettings{}, ErrInvalidDataProvided
	}
	if newDelay > s.maxDelay {
		log.Warn().
			Str("func", "delayService.SetDelay").
			Str("vault_id", string(vaultID)).
			Dur("new_delay", newDelay).
			Dur("max_delay", s.maxDelay).
			Msg("delay change rejected: exceeds maximum")
		return models.VaultSettings{}, ErrDelayTooLong
	}

	settings, err := s.settings.UpsertDelay(ctx, vaultID, newDelay)
	if err != nil {
		return models.VaultSettings{}, err
	}

	s.events.record(ctx, vaultID, models.EventDelayChanged, map[string]any{
		"delay": settings.Delay.String(),
	})

	return settings, nil
}

// AddProposer adds an identity to the vault's allowlist. Only the vault may
// mutate its own allowlist; a notification is emitted only when membership
// actually changed.
func (s *delayService) AddProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error {
	if err := s.authorizeMutation(ctx, caller, vaultID, address, "AddProposer"); err != nil {
		return err
	}

	added, err := s.proposers.AddProposer(ctx, vaultID, address)
	if err != nil {
		return err
	}

	if added {
		s.events.record(ctx, vaultID, models.EventProposerAdded, map[string]any{
			"address": address,
		})
	}

	return nil
}

// RemoveProposer removes an identity from the vault's allowlist. The change
// is visible to the very next authorization decision: a proposer removed
// after proposing can no longer trigger their own pending request.
func (s *delayService) RemoveProposer(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity) error {
	if err := s.authorizeMutation(ctx, caller, vaultID, address, "RemoveProposer"); err != nil {
		return err
	}

	removed, err := s.proposers.RemoveProposer(ctx, vaultID, address)
	if err != nil {
		return err
	}

	if removed {
		s.events.record(ctx, vaultID, models.EventProposerRemoved, map[string]any{
			"address": address,
		})
	}

	return nil
}

// ListProposers returns the vault's allowlist.
func (s *delayService) ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error) {
	if err := validateVaultID(vaultID); err != nil {
		return nil, err
	}

	return s.proposers.ListProposers(ctx, vaultID)
}

func (s *delayService) authorizeMutation(ctx context.Context, caller models.Identity, vaultID models.Identity, address models.Identity, op string) error {
	log := logger.FromContext(ctx)

	if err := validateVaultID(vaultID); err != nil {
		return err
	}
	if address.IsZero() || address.Validate() != nil {
		return ErrInvalidDataProvided
	}
	if !s.isVault(vaultID, caller) {
		log.Warn().
			Str("func", "delayService."+op).
			Str("vault_id", string(vaultID)).
			Str("caller", string(caller)).
			Msg("allowlist mutation rejected: caller is not the vault")
		return ErrNotTheVault
	}

	return nil
}
