// SPDX-License-Identifier: Apache-2.0

package template

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/davistroy/radioforms-sub003/models"
)

// Validate checks a form data payload against its template and returns
// every issue found, never stopping at the first. A nil result means
// the payload is valid.
//
// Fields hidden by a visibility condition are exempt from all checks,
// including required-ness: a condition that hides a field also waives
// its constraints.
func Validate(data models.Values, tpl *Template) *ValidationError {
	return validate(data, tpl, true)
}

// ValidatePartial is Validate without the required-field checks. Used
// while a form is still being drafted: partial payloads save freely,
// but present values must still be well-typed and rule-conformant.
// Required-ness is enforced on the transition into completed or final.
func ValidatePartial(data models.Values, tpl *Template) *ValidationError {
	return validate(data, tpl, false)
}

func validate(data models.Values, tpl *Template, checkRequired bool) *ValidationError {
	if data == nil {
		data = models.Values{}
	}

	var issues []Issue
	for si := range tpl.Sections {
		section := &tpl.Sections[si]
		for fi := range section.Fields {
			field := &section.Fields[fi]
			if !fieldVisible(section, field, data) {
				continue
			}
			issues = append(issues, validateField(field, data, checkRequired)...)
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{FormType: tpl.FormType, Issues: issues}
}

func validateField(field *Field, data models.Values, checkRequired bool) []Issue {
	var issues []Issue
	fail := func(rule *Rule, format string, args ...any) {
		issue := Issue{FieldID: field.ID, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
		if rule != nil {
			issue.Rule = rule.Type
			if rule.ErrorMessage != "" {
				issue.Message = rule.ErrorMessage
			}
		}
		issues = append(issues, issue)
	}

	empty := data.IsEmpty(field.ID)

	required := field.Required
	var requiredRule *Rule
	for i := range field.Rules {
		if field.Rules[i].Type == RuleRequired {
			required = true
			requiredRule = &field.Rules[i]
		}
	}
	if checkRequired && required && empty {
		if requiredRule == nil {
			requiredRule = &Rule{Type: RuleRequired}
		}
		fail(requiredRule, "field %q is required", field.ID)
	}
	if empty {
		return issues
	}

	value := data[field.ID]
	if msg := checkType(field, value); msg != "" {
		fail(nil, "%s", msg)
		return issues
	}

	for i := range field.Rules {
		rule := &field.Rules[i]
		switch rule.Type {
		case RulePattern:
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				fail(rule, "field %q has an invalid pattern rule", field.ID)
				continue
			}
			if !re.MatchString(stringify(value)) {
				fail(rule, "field %q does not match the expected format", field.ID)
			}

		case RuleMinLength:
			if rule.Value != nil && lengthOf(value) < int(*rule.Value) {
				fail(rule, "field %q must be at least %d characters", field.ID, int(*rule.Value))
			}

		case RuleMaxLength:
			if rule.Value != nil && lengthOf(value) > int(*rule.Value) {
				fail(rule, "field %q must be at most %d characters", field.ID, int(*rule.Value))
			}

		case RuleMin:
			if n, ok := numericValue(value); ok && rule.Value != nil && n < *rule.Value {
				fail(rule, "field %q must be at least %v", field.ID, *rule.Value)
			}

		case RuleMax:
			if n, ok := numericValue(value); ok && rule.Value != nil && n > *rule.Value {
				fail(rule, "field %q must be at most %v", field.ID, *rule.Value)
			}

		case RuleCrossField:
			if msg := checkCrossField(field, rule, value, data); msg != "" {
				fail(rule, "%s", msg)
			}
		}
	}

	return issues
}

// checkCrossField evaluates a comparison against another field. The
// rule passes silently when the other field is empty; required-ness of
// the comparand is its own rule.
func checkCrossField(field *Field, rule *Rule, value any, data models.Values) string {
	if data.IsEmpty(rule.Field) {
		return ""
	}
	other := data[rule.Field]

	switch rule.Op {
	case OpAfter:
		a, okA := temporalValue(value)
		b, okB := temporalValue(other)
		if !okA || !okB {
			return fmt.Sprintf("field %q cannot be compared with %q", field.ID, rule.Field)
		}
		if !a.After(b) {
			return fmt.Sprintf("field %q must be after %q", field.ID, rule.Field)
		}

	case OpNotEqual:
		if stringify(value) == stringify(other) {
			return fmt.Sprintf("field %q must differ from %q", field.ID, rule.Field)
		}
	}

	return ""
}

func checkType(field *Field, value any) string {
	switch field.Type {
	case TypeNumber:
		if _, ok := numericValue(value); !ok {
			return fmt.Sprintf("field %q must be a number", field.ID)
		}

	case TypeDate:
		if _, ok := temporalValue(value); !ok {
			return fmt.Sprintf("field %q must be a date (YYYY-MM-DD)", field.ID)
		}

	case TypeTime:
		if _, ok := temporalValue(value); !ok {
			return fmt.Sprintf("field %q must be a time (HH:MM)", field.ID)
		}

	case TypeBoolean:
		switch v := value.(type) {
		case bool:
		case string:
			if v != "true" && v != "false" {
				return fmt.Sprintf("field %q must be a boolean", field.ID)
			}
		default:
			return fmt.Sprintf("field %q must be a boolean", field.ID)
		}

	case TypeSingleSelect:
		if !optionAllowed(field.Options, stringify(value)) {
			return fmt.Sprintf("field %q must be one of the listed options", field.ID)
		}

	case TypeMultiSelect:
		items, ok := sliceValue(value)
		if !ok {
			return fmt.Sprintf("field %q must be a list of options", field.ID)
		}
		for _, item := range items {
			if !optionAllowed(field.Options, stringify(item)) {
				return fmt.Sprintf("field %q contains a value outside the listed options", field.ID)
			}
		}

	case TypeRepeatableGroup, TypeTable:
		if _, ok := sliceValue(value); !ok {
			return fmt.Sprintf("field %q must be a list of entries", field.ID)
		}

	case TypeText, TypeTextarea, TypeFile:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("field %q must be text", field.ID)
		}
	}

	return ""
}

// lengthOf measures text fields in runes and list fields in entries.
func lengthOf(v any) int {
	if items, ok := sliceValue(v); ok {
		return len(items)
	}
	return utf8.RuneCountInString(stringify(v))
}

func optionAllowed(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

func sliceValue(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// numericValue coerces the number shapes JSON decoding and typed
// callers can produce.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		n, err := val.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		return n, err == nil
	}
	return 0, false
}

var temporalLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// temporalValue parses the date/time shapes accepted on date and time
// fields.
func temporalValue(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		for _, layout := range temporalLayouts {
			if ts, err := time.Parse(layout, val); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}
