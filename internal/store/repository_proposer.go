package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

// proposerRepository is the PostgreSQL-backed implementation of
// [ProposerRepository]. It manages per-vault allowlist membership in the
// "vault_proposers" table.
//
// Membership reads are executed against the live table on every call; the
// repository holds no caches, so a removal is visible to the very next
// authorization decision.
type proposerRepository struct {
	*DB
	logger *logger.Logger
}

// NewProposerRepository constructs a [ProposerRepository] backed by the
// provided database connection and logger.
func NewProposerRepository(db *DB, logger *logger.Logger) ProposerRepository {
	logger.Debug().Msg("creating proposer repository")
	return &proposerRepository{
		DB:     db,
		logger: logger,
	}
}

// AddProposer inserts an allowlist entry. The insert is idempotent
// (ON CONFLICT DO NOTHING); the returned flag reports whether a new row was
// actually created, so callers can skip emitting a notification for a
// membership that already existed.
func (r *proposerRepository) AddProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, addProposer, vaultID, address, time.Now())
	if err != nil {
		log.Err(err).
			Str("func", "proposerRepository.AddProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert proposer")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "proposerRepository.AddProposer").
			Str("vault_id", string(vaultID)).
			Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected > 0 {
		log.Info().
			Str("func", "proposerRepository.AddProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Msg("proposer added to allowlist")
	}

	return affected > 0, nil
}

// RemoveProposer deletes an allowlist entry. The returned flag reports
// whether a row was actually removed.
func (r *proposerRepository) RemoveProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, removeProposer, vaultID, address)
	if err != nil {
		log.Err(err).
			Str("func", "proposerRepository.RemoveProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to delete proposer")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "proposerRepository.RemoveProposer").
			Str("vault_id", string(vaultID)).
			Msg("failed to read affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected > 0 {
		log.Info().
			Str("func", "proposerRepository.RemoveProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Msg("proposer removed from allowlist")
	}

	return affected > 0, nil
}

// IsProposer reports whether the address is currently on the vault's
// allowlist.
func (r *proposerRepository) IsProposer(ctx context.Context, vaultID models.Identity, address models.Identity) (bool, error) {
	log := logger.FromContext(ctx)

	var member bool
	row := r.DB.QueryRowContext(ctx, isProposer, vaultID, address)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "proposerRepository.IsProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute membership query")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&member); err != nil {
		log.Err(err).
			Str("func", "proposerRepository.IsProposer").
			Str("vault_id", string(vaultID)).
			Str("address", string(address)).
			Msg("failed to scan membership row")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return member, nil
}

// ListProposers returns the vault's allowlist ordered by insertion time.
// An empty slice is returned when the vault has no allowlist entries.
func (r *proposerRepository) ListProposers(ctx context.Context, vaultID models.Identity) ([]models.Proposer, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listProposers, vaultID)
	if err != nil {
		log.Err(err).
			Str("func", "proposerRepository.ListProposers").
			Str("vault_id", string(vaultID)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute allowlist query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	proposers := make([]models.Proposer, 0, 10)

	for rows.Next() {
		var proposer models.Proposer

		if scanErr := rows.Scan(&proposer.VaultID, &proposer.Address, &proposer.AddedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "proposerRepository.ListProposers").
				Str("vault_id", string(vaultID)).
				Msg("failed to scan proposer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		proposers = append(proposers, proposer)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "proposerRepository.ListProposers").
			Str("vault_id", string(vaultID)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return proposers, nil
}
