// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/davistroy/radioforms-sub003/models"
)

// Column describes one column of an entity table. The expected column set is
// declared per entity from the actual schema — entities do not share an
// assumed common column set (attachments, for instance, has no updated_at).
type Column struct {
	// Name is the column name as it appears in the table.
	Name string

	// Nullable marks columns that may hold NULL. Non-nullable columns are
	// checked for presence before an insert is attempted.
	Nullable bool

	// Generated marks columns the database fills on its own (the primary
	// key, default timestamps). Generated columns are exempt from the
	// presence check and are stripped from inserts when absent.
	Generated bool
}

// TableSchema is the static description of an entity table the generic DAO
// operates on: table name, primary-key column, and the full column list in
// schema order.
type TableSchema struct {
	Table   string
	Key     string
	Columns []Column
}

// ColumnNames returns the names of all columns in schema order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether name is a column of the table.
func (s TableSchema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Mapper converts between an entity type and the canonical [models.Values]
// representation. The generic DAO never touches entity internals; every
// entity-specific repository supplies its own Mapper.
//
// ToValues and FromValues must be lossless inverses for all persisted
// fields so the typed and map-shaped outputs of a read always represent the
// same underlying row.
type Mapper[T any] interface {
	// Schema returns the static table description for T.
	Schema() TableSchema

	// ToValues flattens entity into the canonical column→value mapping.
	ToValues(entity T) (models.Values, error)

	// FromValues builds a typed entity from a scanned row mapping.
	FromValues(values models.Values) (T, error)
}
