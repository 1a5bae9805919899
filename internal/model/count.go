package model

import (
	"encoding/json"

	"github.com/apiverify/reportgen/internal/format"
)

// Count is a non-negative field tally from the wire. Validators emit
// counts as integers, floats, or numeric strings; anything that does
// not coerce to a number defaults to zero, and negative values clamp
// to zero. A malformed count never fails the decode.
type Count int

// UnmarshalJSON accepts any JSON token and coerces it leniently.
func (c *Count) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n := format.SafeInt(v, 0)
	if n < 0 {
		n = 0
	}
	*c = Count(n)
	return nil
}

// MarshalJSON writes the count as a plain integer.
func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}
