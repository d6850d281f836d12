package models

import "time"

// Incident groups related forms under one emergency event. Forms
// reference the incident by name rather than by foreign key; the
// grouping is loose on purpose (see DESIGN.md).
type Incident struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// StartDate is when the incident was opened.
	StartDate time.Time `json:"start_date"`

	// EndDate, when present, marks the incident closed. Clearing it
	// reopens the incident.
	EndDate *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the incident is still open (no end date).
func (i Incident) Active() bool {
	return i.EndDate == nil
}

// TableName returns the name of the database table
// associated with the Incident model.
func (i Incident) TableName() string {
	return "incidents"
}
