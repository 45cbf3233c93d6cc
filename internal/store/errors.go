package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned when a query, update, or delete
	// targets a credential record that does not exist in the database.
	ErrCredentialNotFound = errors.New("credential record was not found")

	// ErrCredentialNotSaved is returned when an INSERT completes without
	// error but the number of affected rows is zero, indicating that no
	// data was actually persisted.
	ErrCredentialNotSaved = errors.New("credential record was not saved")

	// ErrPreferenceNotFound is returned when a preference key has no
	// stored value.
	ErrPreferenceNotFound = errors.New("preference was not found")
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

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan credential row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan credential rows")
)
