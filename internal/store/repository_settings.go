package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

// settingsRepository is the PostgreSQL-backed implementation of
// [SettingsRepository]. Delays are stored as BIGINT nanosecond counts and
// surfaced as [time.Duration].
type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

// GetSettings retrieves the vault's settings row.
//
// Returns [ErrSettingsNotFound] when the vault has never changed its delay;
// the caller substitutes the configured default in that case.
func (r *settingsRepository) GetSettings(ctx context.Context, vaultID models.Identity) (models.VaultSettings, error) {
	log := logger.FromContext(ctx)

	var settings models.VaultSettings
	row := r.DB.QueryRowContext(ctx, getVaultSettings, vaultID)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "settingsRepository.GetSettings").
			Str("vault_id", string(vaultID)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute settings lookup query")
		return models.VaultSettings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&settings.VaultID, &settings.Delay, &settings.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultSettings{}, ErrSettingsNotFound
		}

		log.Err(err).
			Str("func", "settingsRepository.GetSettings").
			Str("vault_id", string(vaultID)).
			Msg("failed to scan settings row")
		return models.VaultSettings{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return settings, nil
}

// UpsertDelay creates or replaces the vault's delay and returns the stored
// settings as persisted, including the refreshed update timestamp.
func (r *settingsRepository) UpsertDelay(ctx context.Context, vaultID models.Identity, delay time.Duration) (models.VaultSettings, error) {
	log := logger.FromContext(ctx)

	var settings models.VaultSettings
	row := r.DB.QueryRowContext(ctx, upsertVaultDelay, vaultID, delay, time.Now())

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "settingsRepository.UpsertDelay").
			Str("vault_id", string(vaultID)).
			Dur("delay", delay).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute delay upsert query")
		return models.VaultSettings{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&settings.VaultID, &settings.Delay, &settings.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "settingsRepository.UpsertDelay").
			Str("vault_id", string(vaultID)).
			Msg("failed to scan upserted settings row")
		return models.VaultSettings{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	log.Info().
		Str("func", "settingsRepository.UpsertDelay").
		Str("vault_id", string(vaultID)).
		Dur("delay", settings.Delay).
		Msg("vault delay updated")

	return settings, nil
}
