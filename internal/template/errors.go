package template

import (
	"fmt"
	"strings"
)

// SchemaError reports a structurally invalid template document: an
// unknown field type, a duplicate field id, or a violation of the
// template meta-schema. Raised at catalog load time, never during form
// validation.
type SchemaError struct {
	FormType string
	Source   string
	Detail   string
}

func (e *SchemaError) Error() string {
	if e.FormType == "" {
		return fmt.Sprintf("invalid template document %q: %s", e.Source, e.Detail)
	}
	return fmt.Sprintf("invalid template %q (%s): %s", e.FormType, e.Source, e.Detail)
}

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one field-level validation finding. Rule names the rule kind
// that flagged it, empty for type-mismatch findings.
type Issue struct {
	FieldID  string   `json:"field_id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Rule     RuleType `json:"rule,omitempty"`
}

// ValidationError aggregates every issue found in one validation pass.
// Validation never short-circuits: two missing fields yield two issues.
type ValidationError struct {
	FormType string  `json:"form_type"`
	Issues   []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "form %s failed validation with %d issue(s)", e.FormType, len(e.Issues))
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "; %s: %s", issue.FieldID, issue.Message)
	}
	return b.String()
}

// MissingFields returns the ids of fields flagged by required checks,
// in issue order. It keys on the issue's rule kind, so custom rule
// messages do not hide a field.
func (e *ValidationError) MissingFields() []string {
	var out []string
	for _, issue := range e.Issues {
		if issue.Rule == RuleRequired {
			out = append(out, issue.FieldID)
		}
	}
	return out
}
