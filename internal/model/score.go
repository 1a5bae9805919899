package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Score is a flexible numeric scalar from the wire. Validators emit
// accuracy and confidence values as numbers, numeric strings, or
// occasionally junk; Score absorbs all of them without failing the
// decode and remembers which case it saw.
type Score struct {
	// Set reports whether any value was present (null and absent
	// both leave Set false).
	Set bool

	// Valid reports whether the value was numeric.
	Valid bool

	// Value is the numeric value when Valid.
	Value float64

	// Raw is the original textual value when not numeric.
	Raw string
}

// NumericScore builds a set, valid Score. Used by tests and the
// embedded sample.
func NumericScore(v float64) Score {
	return Score{Set: true, Valid: true, Value: v}
}

// AsAny returns nil when unset, the float64 when numeric, and the raw
// string otherwise. Display formatting switches on this shape.
func (s Score) AsAny() any {
	switch {
	case !s.Set:
		return nil
	case s.Valid:
		return s.Value
	default:
		return s.Raw
	}
}

// UnmarshalJSON accepts numbers, numeric strings, null, and anything
// else. Only a genuinely broken JSON token propagates an error.
func (s *Score) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*s = Score{}
	case float64:
		*s = Score{Set: true, Valid: true, Value: val}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			*s = Score{Set: true, Valid: true, Value: f}
		} else {
			*s = Score{Set: true, Raw: val}
		}
	default:
		*s = Score{Set: true, Raw: fmt.Sprint(val)}
	}
	return nil
}

// MarshalJSON round-trips the closest representation of what was
// received.
func (s Score) MarshalJSON() ([]byte, error) {
	switch {
	case !s.Set:
		return []byte("null"), nil
	case s.Valid:
		return json.Marshal(s.Value)
	default:
		return json.Marshal(s.Raw)
	}
}
