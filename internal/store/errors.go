package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDuplicateRequest is returned when an INSERT of a new request hits
	// the per-vault unique constraint on the content-addressed id. Terminal
	// requests keep their rows, so a cancelled or executed id can never be
	// re-proposed.
	ErrDuplicateRequest = errors.New("duplicate request")

	// ErrRequestNotFound is returned when a query or status transition
	// targets a request (identified by vault_id and request_id) that does
	// not exist in the database.
	ErrRequestNotFound = errors.New("request was not found")

	// ErrInvalidTransition is returned when a status transition finds the
	// request in a state other than pending. Lifecycle transitions are
	// strictly one-way; a terminal request never changes again.
	ErrInvalidTransition = errors.New("request is not pending")

	// ErrSettingsNotFound is returned when a vault has no settings row yet.
	// Callers fall back to the configured default delay.
	ErrSettingsNotFound = errors.New("vault settings were not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
