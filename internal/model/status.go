package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusKind is the closed set of comparison outcomes.
type StatusKind string

// Known status kinds. Anything else folds into StatusOther.
const (
	StatusMatched   StatusKind = "matched"
	StatusUnmatched StatusKind = "unmatched"
	StatusMissing   StatusKind = "missing"
	StatusExtra     StatusKind = "extra"
	StatusOther     StatusKind = "other"
)

var statusKinds = map[string]StatusKind{
	"matched":   StatusMatched,
	"unmatched": StatusUnmatched,
	"missing":   StatusMissing,
	"extra":     StatusExtra,
}

// Status is the comparison outcome for a field. The wire value is an
// open string enum; Status closes it to a fixed set of kinds while
// preserving the raw string so unrecognized values still display
// exactly as supplied.
type Status struct {
	// Kind is the normalized bucket.
	Kind StatusKind

	// Raw is the original wire value, casing intact.
	Raw string
}

// ParseStatus normalizes a raw status value. Matching is
// case-insensitive; unknown values bucket as StatusOther.
func ParseStatus(raw string) Status {
	kind, ok := statusKinds[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		kind = StatusOther
	}
	return Status{Kind: kind, Raw: raw}
}

// Bucket returns the partition bucket for this status. The zero value
// (status key absent from the payload) buckets as StatusOther, so a
// status-less field is still placed rather than dropped.
func (s Status) Bucket() StatusKind {
	if s.Kind == "" {
		return StatusOther
	}
	return s.Kind
}

// Display returns the raw value for rendering, or the placeholder
// glyph when the status was absent.
func (s Status) Display() string {
	if strings.TrimSpace(s.Raw) == "" {
		return Placeholder
	}
	return s.Raw
}

// UnmarshalJSON accepts any JSON token: strings parse normally and
// non-strings are stringified, so a malformed status never fails a
// render.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseStatus(str)
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*s = Status{Kind: StatusOther}
		return nil
	}
	*s = ParseStatus(fmt.Sprint(v))
	return nil
}

// MarshalJSON writes the raw wire value back out.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw)
}
