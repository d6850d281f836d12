package models

import (
	"encoding/json"
	"fmt"
)

// Values is the canonical untyped row representation used across the
// data-access layer. Every accessor that offers a map-shaped output and
// every mutator that accepts a map-shaped input converges on this type
// before touching storage, so typed and untyped paths share one
// implementation.
type Values map[string]any

// Clone returns a shallow copy of v. A nil receiver yields nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// String returns the value under key coerced to a string. The ok flag
// is false when the key is absent, nil, or not string-like.
func (v Values) String(key string) (string, bool) {
	raw, present := v[key]
	if !present || raw == nil {
		return "", false
	}
	switch s := raw.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

// IsEmpty reports whether the value under key is absent, nil, an empty
// string, or an empty slice. Used by required-field checks.
func (v Values) IsEmpty(key string) bool {
	raw, present := v[key]
	if !present || raw == nil {
		return true
	}
	switch val := raw.(type) {
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}

// MarshalData serializes v to the JSON text stored in the forms.data
// column. A nil map serializes as an empty object so the column's NOT
// NULL constraint always holds.
func (v Values) MarshalData() (string, error) {
	if v == nil {
		v = Values{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error serializing data payload: %w", err)
	}
	return string(raw), nil
}

// UnmarshalData parses the JSON text of a data column into Values.
func UnmarshalData(raw string) (Values, error) {
	if raw == "" {
		return Values{}, nil
	}
	var v Values
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("error parsing data payload: %w", err)
	}
	return v, nil
}
