package store

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestClassify_NilAndUnknownErrors(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("some random failure")))
}

func TestClassify_RetryableCodes(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
}

func TestClassify_NonRetryableCodes(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrCorrupt}))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrIoErr}))
}

func TestClassify_WrappedError(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	wrapped := &StorageError{
		Op:    "Create",
		Table: "forms",
		Err:   sqlite3.Error{Code: sqlite3.ErrBusy},
	}
	assert.Equal(t, Retryable, c.Classify(wrapped))
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}

	assert.True(t, IsUniqueViolation(uniqueErr))
	assert.True(t, IsUniqueViolation(&StorageError{Op: "Create", Table: "incidents", Err: uniqueErr}))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("not a driver error")))
	assert.False(t, IsUniqueViolation(sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintForeignKey,
	}))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintForeignKey,
	}

	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.True(t, IsForeignKeyViolation(&StorageError{Op: "Create", Table: "attachments", Err: fkErr}))

	assert.False(t, IsForeignKeyViolation(errors.New("not a driver error")))
	assert.False(t, IsForeignKeyViolation(sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	}))
}
