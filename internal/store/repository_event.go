package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
)

// eventRepository is the PostgreSQL-backed implementation of
// [EventRepository]. Events are append-only: a row is inserted when a
// notification-worthy change happens and stamped once when the webhook
// dispatcher delivers it.
type eventRepository struct {
	*DB
	logger *logger.Logger
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateEvent records a new undispatched notification event.
func (r *eventRepository) CreateEvent(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, createEvent,
		event.EventID,
		event.VaultID,
		event.Kind,
		[]byte(event.Payload),
		event.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.CreateEvent").
			Str("event_id", event.EventID).
			Str("vault_id", string(event.VaultID)).
			Str("kind", string(event.Kind)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetUndispatched returns up to limit events awaiting webhook delivery,
// oldest first, so delivery order follows creation order.
func (r *eventRepository) GetUndispatched(ctx context.Context, limit int) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getUndispatchedEvents, limit)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.GetUndispatched").
			Int("limit", limit).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute undispatched events query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0, limit)

	for rows.Next() {
		var event models.Event
		var payload []byte

		scanErr := rows.Scan(
			&event.EventID,
			&event.VaultID,
			&event.Kind,
			&payload,
			&event.CreatedAt,
			&event.DispatchedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventRepository.GetUndispatched").
				Msg("failed to scan event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		event.Payload = payload
		events = append(events, event)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "eventRepository.GetUndispatched").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return events, nil
}

// MarkDispatched stamps the given events as delivered inside a single
// database transaction using a prepared statement.
//
// The transaction is rolled back automatically (via defer) if any individual
// update fails; the commit is attempted only after all ids are stamped.
func (r *eventRepository) MarkDispatched(ctx context.Context, eventIDs []string, dispatchedAt time.Time) error {
	log := logger.FromContext(ctx)

	if len(eventIDs) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.MarkDispatched").
			Int("count", len(eventIDs)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, markEventDispatched)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.MarkDispatched").
			Int("count", len(eventIDs)).
			Msg("failed to prepare statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, eventID := range eventIDs {
		log.Debug().
			Str("func", "eventRepository.MarkDispatched").
			Int("iteration", idx+1).
			Int("total", len(eventIDs)).
			Str("event_id", eventID).
			Msg("stamping event in transaction")

		if _, execErr := stmt.ExecContext(ctx, dispatchedAt, eventID); execErr != nil {
			log.Err(execErr).
				Str("func", "eventRepository.MarkDispatched").
				Int("iteration", idx+1).
				Str("event_id", eventID).
				Msg("failed to execute prepared statement")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "eventRepository.MarkDispatched").
			Int("count", len(eventIDs)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
