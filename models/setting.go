package models

import "time"

// Setting is one key-value pair of application configuration persisted
// in the database. Settings are upserted; there is no deletion
// lifecycle beyond overwriting the value.
type Setting struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Setting model.
func (s Setting) TableName() string {
	return "settings"
}
