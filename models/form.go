package models

import "time"

// FormStatus is the lifecycle state of a form record.
// Transitions between statuses are governed by the lifecycle package;
// the persistence layer stores the value verbatim.
type FormStatus string

const (
	// StatusDraft is the initial state of every new form. All fields,
	// including the data payload, are editable.
	StatusDraft FormStatus = "draft"

	// StatusCompleted marks a form whose required fields passed
	// validation. The data payload is still editable.
	StatusCompleted FormStatus = "completed"

	// StatusFinal marks a form that has been signed off. The data
	// payload is read-only; only archival remains possible.
	StatusFinal FormStatus = "final"

	// StatusArchived is terminal. No further mutation of any kind.
	StatusArchived FormStatus = "archived"
)

// Valid reports whether s is one of the recognized lifecycle statuses.
func (s FormStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusCompleted, StatusFinal, StatusArchived:
		return true
	}
	return false
}

// Form is the central entity: one filled-out ICS form of a given type,
// grouped under an incident by name. The Data payload holds every
// schema-defined field value keyed by the template's field ids.
type Form struct {
	// ID is the database-generated primary key.
	ID int64 `json:"id"`

	// FormType is one of the enumerated ICS codes (e.g. "ICS-213").
	// Exactly one active template exists per form type.
	FormType string `json:"form_type"`

	// IncidentName references the owning incident by name.
	// This is a soft reference; integrity is enforced at the service
	// layer when the form is created.
	IncidentName string `json:"incident_name"`

	// IncidentNumber is the optional official incident number.
	IncidentNumber *string `json:"incident_number,omitempty"`

	// Status is the current lifecycle state.
	Status FormStatus `json:"status"`

	// Data holds all template-defined field values. Keys are expected
	// to be a subset of the template's field ids.
	Data Values `json:"data"`

	// Notes is free-form operator commentary outside the template.
	Notes *string `json:"notes,omitempty"`

	// PreparerName is the name of the responder who filled the form.
	PreparerName *string `json:"preparer_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Form model.
func (f Form) TableName() string {
	return "forms"
}
