package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrPrivacySettingsAlreadyExist is returned when settings are created
	// for an identifier that already has a record.
	ErrPrivacySettingsAlreadyExist = errors.New("privacy settings already exist")

	// ErrInvalidFieldName is returned when a supplied flag name is not one
	// of the recognised privacy flags.
	ErrInvalidFieldName = errors.New("invalid privacy field name")

	// ErrEmptyIdentifier is returned when an operation is called with an
	// empty identifier.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrUnsupportedDriver is returned by [NewConnect] for unknown drivers.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Collection store errors.
var (
	// ErrCollectionNotFound is returned when a collection path does not
	// resolve to a collection folder.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCardNotFound is returned when no item with the requested href
	// exists in a collection.
	ErrCardNotFound = errors.New("card not found")

	// ErrUnsafePath is returned for collection paths or hrefs that would
	// escape the store root.
	ErrUnsafePath = errors.New("unsafe path")

	// ErrEnforcementFailed wraps an error raised by the enforcer during an
	// upload. Nothing is written in that case.
	ErrEnforcementFailed = errors.New("privacy enforcement failed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
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

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
