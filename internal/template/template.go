// SPDX-License-Identifier: Apache-2.0

// Package template implements the JSON-driven form template engine:
// a catalog of per-form-type schemas, a collect-all validator, and a
// conditional visibility evaluator. Templates describe every renderable
// ICS form so no per-type code exists anywhere in the application.
package template

// Template is one form schema: the full description of a single ICS
// form type at a given version.
type Template struct {
	// FormType is the ICS code this template renders (e.g. "ICS-213").
	// Exactly one template is active per form type.
	FormType string `json:"form_type"`

	// Version identifies the template revision and travels with every
	// export so a document can always be traced to its schema.
	Version string `json:"version"`

	// Title is the human-readable form name.
	Title string `json:"title,omitempty"`

	Sections []Section `json:"sections"`
}

// Section groups fields under a heading. A section with a false
// condition hides all of its fields.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Fields    []Field    `json:"fields"`
	Condition *Condition `json:"condition,omitempty"`
}

// Field is one input in a section. Field IDs are the keys of the form's
// data payload and are unique across the whole template.
type Field struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required,omitempty"`

	// Options enumerates the legal values for select fields.
	Options []string `json:"options,omitempty"`

	Rules     []Rule     `json:"rules,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// FieldType is the tagged union of input kinds a template may declare.
type FieldType string

const (
	TypeText            FieldType = "text"
	TypeTextarea        FieldType = "textarea"
	TypeNumber          FieldType = "number"
	TypeDate            FieldType = "date"
	TypeTime            FieldType = "time"
	TypeBoolean         FieldType = "boolean"
	TypeSingleSelect    FieldType = "single_select"
	TypeMultiSelect     FieldType = "multi_select"
	TypeFile            FieldType = "file"
	TypeRepeatableGroup FieldType = "repeatable_group"
	TypeTable           FieldType = "table"
)

// Valid reports whether t is a recognized field type.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeDate, TypeTime,
		TypeBoolean, TypeSingleSelect, TypeMultiSelect, TypeFile,
		TypeRepeatableGroup, TypeTable:
		return true
	}
	return false
}

// RuleType identifies one validation rule kind.
type RuleType string

const (
	RuleRequired   RuleType = "required"
	RulePattern    RuleType = "pattern"
	RuleMinLength  RuleType = "min_length"
	RuleMaxLength  RuleType = "max_length"
	RuleMin        RuleType = "min"
	RuleMax        RuleType = "max"
	RuleCrossField RuleType = "cross_field"
)

// Valid reports whether t is a recognized rule type.
func (t RuleType) Valid() bool {
	switch t {
	case RuleRequired, RulePattern, RuleMinLength, RuleMaxLength,
		RuleMin, RuleMax, RuleCrossField:
		return true
	}
	return false
}

// Rule is one declarative validation constraint on a field. Which
// parameters apply depends on Type: Pattern for pattern rules, Value
// for length and numeric bounds, Field/Op for cross-field comparisons.
type Rule struct {
	Type RuleType `json:"type"`

	Pattern string   `json:"pattern,omitempty"`
	Value   *float64 `json:"value,omitempty"`

	// Field names the other field a cross_field rule compares against;
	// Op selects the comparison ("after" or "not_equal").
	Field string `json:"field,omitempty"`
	Op    string `json:"op,omitempty"`

	// ErrorMessage overrides the generated message when non-empty.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Cross-field comparison operators.
const (
	OpAfter    = "after"
	OpNotEqual = "not_equal"
)

// Condition gates the visibility of a field or section on another
// field's value. With Equals set the subject is visible when the
// referenced field equals it; with Equals nil the subject is visible
// when the referenced field is non-empty.
type Condition struct {
	FieldID string  `json:"field_id"`
	Equals  *string `json:"equals,omitempty"`
}

// FieldByID returns the field with the given id and the section holding
// it. The second result is false when no such field exists.
func (t *Template) FieldByID(id string) (*Field, bool) {
	for si := range t.Sections {
		for fi := range t.Sections[si].Fields {
			if t.Sections[si].Fields[fi].ID == id {
				return &t.Sections[si].Fields[fi], true
			}
		}
	}
	return nil, false
}

// FieldCount returns the total number of fields across all sections.
func (t *Template) FieldCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Fields)
	}
	return n
}
