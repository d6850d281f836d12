package store

import (
	"fmt"
	"time"

	"github.com/davistroy/radioforms-sub003/models"
)

// Time layouts accepted when a driver hands back a timestamp as text.
// SQLite stores what it was given; goose defaults and our own writes cover
// both layouts below.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// scanDestinations returns a scan target slice for n columns. Every target
// is a *any so rows of any shape can be captured before normalization.
func scanDestinations(n int) []any {
	dests := make([]any, n)
	for i := range dests {
		dests[i] = new(any)
	}
	return dests
}

// collectValues assembles the canonical Values mapping from scan targets
// previously filled by Row.Scan. Byte slices are copied into strings so the
// mapping stays valid after the driver reuses its buffers.
func collectValues(cols []string, dests []any) models.Values {
	values := make(models.Values, len(cols))
	for i, col := range cols {
		raw := *(dests[i].(*any))
		values[col] = normalizeValue(raw)
	}
	return values
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	}
	return v
}

// Int64Value coerces a scanned column value to int64.
func Int64Value(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int:
		return int64(val), nil
	case float64:
		return int64(val), nil
	}
	return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
}

// StringValue coerces a scanned column value to a string.
func StringValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	}
	return "", fmt.Errorf("value %v (%T) is not a string", v, v)
}

// StringPtrValue coerces a nullable column value to *string, mapping NULL
// to nil.
func StringPtrValue(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, err := StringValue(v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TimeValue coerces a scanned column value to time.Time. The sqlite driver
// returns time.Time for TIMESTAMP columns; text fallbacks are parsed with
// the known layouts.
func TimeValue(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, val); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", val)
	case []byte:
		return TimeValue(string(val))
	}
	return time.Time{}, fmt.Errorf("value %v (%T) is not a timestamp", v, v)
}

// TimePtrValue coerces a nullable column value to *time.Time, mapping NULL
// to nil.
func TimePtrValue(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	ts, err := TimeValue(v)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
