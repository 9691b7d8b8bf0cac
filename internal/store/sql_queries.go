package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-vault-warden/models"
)

const (
	createRequest = `INSERT INTO requests (
			vault_id,
			request_id,
			target,
			value,
			data,
			call_kind,
			proof_public_key,
			proof_signature,
			status,
			proposed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;`

	getRequest = `SELECT id, vault_id, request_id, target, value, data, call_kind, proof_public_key, proof_signature, status, proposed_at, finalized_at
		FROM requests
		WHERE vault_id = $1 AND request_id = $2;`

	// finalizeRequest transitions a pending request to a terminal status.
	// The CTE returns two columns that disambiguate the outcome:
	//   - both NULL               -> no such request
	//   - id NULL, status present -> request exists but is not pending
	//   - id present              -> transition applied
	finalizeRequest = `WITH target_request AS (
			SELECT id, status
			FROM requests
			WHERE vault_id = $1 AND request_id = $2
		), updated AS (
			UPDATE requests
			SET status = $3, finalized_at = $4
			WHERE vault_id = $1 AND request_id = $2 AND status = 'pending'
			RETURNING id
		)
		SELECT
			(SELECT id FROM updated),
			(SELECT status FROM target_request);`

	getVaultSettings = `SELECT vault_id, delay, updated_at
		FROM vault_settings
		WHERE vault_id = $1;`

	upsertVaultDelay = `INSERT INTO vault_settings (vault_id, delay, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (vault_id) DO UPDATE
		SET delay = EXCLUDED.delay, updated_at = EXCLUDED.updated_at
		RETURNING vault_id, delay, updated_at;`

	addProposer = `INSERT INTO vault_proposers (vault_id, address, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (vault_id, address) DO NOTHING;`

	removeProposer = `DELETE FROM vault_proposers
		WHERE vault_id = $1 AND address = $2;`

	isProposer = `SELECT EXISTS (
			SELECT 1 FROM vault_proposers WHERE vault_id = $1 AND address = $2
		);`

	listProposers = `SELECT vault_id, address, added_at
		FROM vault_proposers
		WHERE vault_id = $1
		ORDER BY added_at;`

	createEvent = `INSERT INTO events (event_id, vault_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5);`

	getUndispatchedEvents = `SELECT event_id, vault_id, kind, payload, created_at, dispatched_at
		FROM events
		WHERE dispatched_at IS NULL
		ORDER BY created_at
		LIMIT $1;`

	markEventDispatched = `UPDATE events
		SET dispatched_at = $1
		WHERE event_id = $2;`
)

// buildListRequestsQuery dynamically builds the vault-scoped listing query
// from the optional filter fields.
func buildListRequestsQuery(vaultID models.Identity, filter models.RequestFilter) (string, []any, error) {
	builder := sq.Select(
		"id",
		"vault_id",
		"request_id",
		"target",
		"value",
		"data",
		"call_kind",
		"proof_public_key",
		"proof_signature",
		"status",
		"proposed_at",
		"finalized_at",
	).
		From(models.Request{}.TableName()).
		Where(sq.Eq{"vault_id": vaultID}).
		OrderBy("proposed_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
