package template

import (
	"fmt"

	"github.com/davistroy/radioforms-sub003/models"
)

// IsVisible evaluates a visibility condition against the form data.
// A nil condition is always visible. With Equals set, the subject shows
// when the referenced field's value stringifies to that exact value;
// with Equals nil, the subject shows when the referenced field is
// non-empty. A condition on a field absent from the data hides the
// subject.
func IsVisible(cond *Condition, data models.Values) bool {
	if cond == nil {
		return true
	}
	if cond.Equals == nil {
		return !data.IsEmpty(cond.FieldID)
	}
	if data.IsEmpty(cond.FieldID) {
		return false
	}
	return stringify(data[cond.FieldID]) == *cond.Equals
}

// fieldVisible reports whether a field is effectively visible: both its
// own condition and its section's condition must hold.
func fieldVisible(section *Section, field *Field, data models.Values) bool {
	return IsVisible(section.Condition, data) && IsVisible(field.Condition, data)
}

// VisibleFields returns the fields visible under data, in template
// order. Callers rendering or serializing a form should iterate this
// rather than the raw sections so hidden fields never leak out.
func (t *Template) VisibleFields(data models.Values) []Field {
	var out []Field
	for i := range t.Sections {
		section := &t.Sections[i]
		for j := range section.Fields {
			field := &section.Fields[j]
			if fieldVisible(section, field, data) {
				out = append(out, *field)
			}
		}
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}
