package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-warden/internal/logger"
	"github.com/MKhiriev/go-vault-warden/models"
	"github.com/jackc/pgerrcode"
)

// requestRepository is the PostgreSQL-backed implementation of
// [RequestRepository]. It executes all request lifecycle operations directly
// against the "requests" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (vault_id, request_id, status).
type requestRepository struct {
	*DB
	logger *logger.Logger
}

// NewRequestRepository constructs a [RequestRepository] backed by the
// provided database connection and logger.
func NewRequestRepository(db *DB, logger *logger.Logger) RequestRepository {
	logger.Debug().Msg("creating request repository")
	return &requestRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateRequest inserts a new pending request and returns it with the
// server-assigned surrogate key populated.
//
// The table carries a unique constraint on (vault_id, request_id), so two
// racing proposals of the same content are serialised by the database: the
// loser receives a unique_violation which is mapped to [ErrDuplicateRequest].
// Terminal rows are never deleted, which makes the constraint also reject
// re-proposal of an already executed or cancelled id.
func (r *requestRepository) CreateRequest(ctx context.Context, request models.Request) (models.Request, error) {
	log := logger.FromContext(ctx)

	var publicKey, signature []byte
	if request.Proof != nil {
		publicKey = request.Proof.PublicKey
		signature = request.Proof.Signature
	}

	row := r.DB.QueryRowContext(ctx, createRequest,
		request.VaultID,
		request.RequestID,
		request.Payload.Target,
		request.Payload.Value,
		request.Payload.Data,
		request.Payload.CallKind,
		publicKey,
		signature,
		request.Status,
		request.ProposedAt,
	)

	// create request in db
	if err := row.Err(); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			log.Warn().
				Str("func", "requestRepository.CreateRequest").
				Str("vault_id", string(request.VaultID)).
				Str("request_id", request.RequestID).
				Msg("request id already exists for this vault")
			return models.Request{}, ErrDuplicateRequest
		default:
			log.Err(err).
				Str("func", "requestRepository.CreateRequest").
				Str("vault_id", string(request.VaultID)).
				Str("request_id", request.RequestID).
				Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
				Msg("failed to insert request")
			return models.Request{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	// scan server-assigned id
	if err := row.Scan(&request.ID); err != nil {
		log.Err(err).
			Str("func", "requestRepository.CreateRequest").
			Str("vault_id", string(request.VaultID)).
			Str("request_id", request.RequestID).
			Msg("failed to scan inserted request id")
		return models.Request{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return request, nil
}

// GetRequest retrieves the request identified by its content-addressed id
// within the given vault's namespace.
//
// Returns [ErrRequestNotFound] when no matching row exists.
func (r *requestRepository) GetRequest(ctx context.Context, vaultID models.Identity, requestID string) (models.Request, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getRequest, vaultID, requestID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "requestRepository.GetRequest").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute request lookup query")
		return models.Request{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "requestRepository.GetRequest").
				Str("vault_id", string(vaultID)).
				Str("request_id", requestID).
				Msg("request not found")
			return models.Request{}, ErrRequestNotFound
		}

		log.Err(err).
			Str("func", "requestRepository.GetRequest").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Msg("failed to scan request row")
		return models.Request{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return request, nil
}

// ListRequests returns the vault's requests matching the filter, newest
// first. The query is built dynamically from the optional filter fields.
func (r *requestRepository) ListRequests(ctx context.Context, vaultID models.Identity, filter models.RequestFilter) ([]models.Request, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRequestsQuery(vaultID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "requestRepository.ListRequests").
			Str("vault_id", string(vaultID)).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "requestRepository.ListRequests").
			Str("vault_id", string(vaultID)).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to execute request listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	requests := make([]models.Request, 0, 20)

	for rows.Next() {
		request, scanErr := scanRequest(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "requestRepository.ListRequests").
				Str("vault_id", string(vaultID)).
				Msg("failed to scan request row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		requests = append(requests, request)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "requestRepository.ListRequests").
			Str("vault_id", string(vaultID)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return requests, nil
}

// MarkExecuted transitions a pending request to executed.
//
// The status update is guarded by a "status = 'pending'" predicate, so two
// racing triggers of the same mature request are serialised by the database:
// exactly one caller observes the transition, the other receives
// [ErrInvalidTransition].
func (r *requestRepository) MarkExecuted(ctx context.Context, vaultID models.Identity, requestID string) error {
	return r.finalize(ctx, vaultID, requestID, models.RequestStatusExecuted)
}

// MarkCancelled transitions a pending request to cancelled, with the same
// race semantics as [requestRepository.MarkExecuted].
func (r *requestRepository) MarkCancelled(ctx context.Context, vaultID models.Identity, requestID string) error {
	return r.finalize(ctx, vaultID, requestID, models.RequestStatusCancelled)
}

// finalize executes the CTE-based transition query ([finalizeRequest]) that
// returns both the updated row id and the current request status, enabling
// the caller to distinguish between "not found" (both NULL) and "already
// terminal" (updatedID NULL, currentStatus non-NULL).
func (r *requestRepository) finalize(ctx context.Context, vaultID models.Identity, requestID string, newStatus models.RequestStatus) error {
	log := logger.FromContext(ctx)

	var updatedID *int64
	var currentStatus *models.RequestStatus

	queryRowErr := r.DB.QueryRowContext(ctx, finalizeRequest, vaultID, requestID, newStatus, time.Now()).Scan(&updatedID, &currentStatus)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "requestRepository.finalize").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Str("new_status", string(newStatus)).
			Bool("retryable", r.errorClassificator.Classify(queryRowErr) == Retryable).
			Msg("failed to execute status transition query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	// not found: target_request empty -> both NULL
	if currentStatus == nil {
		log.Warn().
			Str("func", "requestRepository.finalize").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Msg("request not found")
		return ErrRequestNotFound
	}

	// found but not updated -> request is already terminal
	if updatedID == nil {
		log.Warn().
			Str("func", "requestRepository.finalize").
			Str("vault_id", string(vaultID)).
			Str("request_id", requestID).
			Str("current_status", string(*currentStatus)).
			Str("new_status", string(newStatus)).
			Msg("request is not pending, transition rejected")
		return ErrInvalidTransition
	}

	log.Info().
		Str("func", "requestRepository.finalize").
		Str("vault_id", string(vaultID)).
		Str("request_id", requestID).
		Str("new_status", string(newStatus)).
		Int64("id", *updatedID).
		Msg("request status transition applied")

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared column scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRequest reads one full request row in the column order of [getRequest]
// and [buildListRequestsQuery]. Proof columns are nullable: both NULL means
// the request was proposed under the allowlist policy.
func scanRequest(row rowScanner) (models.Request, error) {
	var request models.Request
	var publicKey, signature []byte

	err := row.Scan(
		&request.ID,
		&request.VaultID,
		&request.RequestID,
		&request.Payload.Target,
		&request.Payload.Value,
		&request.Payload.Data,
		&request.Payload.CallKind,
		&publicKey,
		&signature,
		&request.Status,
		&request.ProposedAt,
		&request.FinalizedAt,
	)
	if err != nil {
		return models.Request{}, err
	}

	if publicKey != nil || signature != nil {
		request.Proof = &models.Proof{
			PublicKey: publicKey,
			Signature: signature,
		}
	}

	return request, nil
}
