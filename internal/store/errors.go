package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned by operations that require an existing row
	// (e.g. loading a form for a status transition) when the row does not
	// exist. Plain finders signal absence with a nil result instead.
	ErrNotFound = errors.New("record was not found")

	// ErrIncidentNameTaken is returned when creating an incident fails
	// because an incident with the same name already exists.
	ErrIncidentNameTaken = errors.New("incident name already exists")

	// ErrCallSignTaken is returned when registering a user fails because
	// the call sign is already assigned to another user.
	ErrCallSignTaken = errors.New("call sign already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)

// SchemaError is returned when the data-access layer is asked to read or
// write a column that does not exist on the target table. Column sets are
// derived strictly from the actual schema per entity, so a SchemaError
// always indicates a programming error in the caller, never bad user input.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unknown column %q for table %q", e.Column, e.Table)
}

// MissingColumnError is returned by create operations when a non-nullable
// column has no value. The check runs before the insert is attempted so the
// caller gets a precise column name instead of a driver constraint message.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q for table %q", e.Column, e.Table)
}

// StorageError wraps a native driver failure (constraint violation, disk
// error, malformed statement). The wrapped error is preserved for logging;
// upper layers surface a generic message to the operator.
type StorageError struct {
	Op    string
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s on %q: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
