// Package model defines the validation payload types, the status
// taxonomy, and tolerant JSON decoding for incoming reports.
//
// Every field of the payload is optional in practice: callers send
// whatever their validator produced, and the renderer must degrade to
// placeholders rather than reject. Decoding therefore never fails on
// missing or unexpected values, only on input that is not shaped like
// a JSON object at all.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultTitle is the report title used when api_name is absent.
const DefaultTitle = "AI Validator Report"

// Placeholder is the glyph rendered where a value is semantically
// absent (as opposed to a genuine empty string).
const Placeholder = "—"

// ValidationReport is the top-level validation result supplied by the
// caller. It is immutable for the duration of one render call and is
// never persisted.
type ValidationReport struct {
	// APIName is the display title. Empty falls back to DefaultTitle.
	APIName string `json:"api_name"`

	// ValidationDate is an ISO-8601 timestamp string. Unparseable
	// values are displayed verbatim, never rejected.
	ValidationDate string `json:"validation_date"`

	// Version is an optional schema or API version shown in the
	// metadata line.
	Version string `json:"version"`

	// Aggregate counts as reported by the validator. They are not
	// cross-validated against len(Fields).
	TotalFieldsCompared Count `json:"total_fields_compared"`
	MatchedFields       Count `json:"matched_fields"`
	UnmatchedFields     Count `json:"unmatched_fields"`
	ExtraFields         Count `json:"extra_fields"`
	MissingFields       Count `json:"missing_fields"`

	// AccuracyScore is a flexible scalar: values <= 1 are fractions,
	// values > 1 are already-scaled percentages, and non-numeric
	// junk is displayed as-is.
	AccuracyScore Score `json:"accuracy_score"`

	// SummaryRecommendation is optional free text from the validator.
	SummaryRecommendation string `json:"summary_recommendation"`

	// Fields is the ordered per-field comparison detail.
	Fields []FieldResult `json:"fields"`
}

// Title returns APIName or the default when absent.
func (r *ValidationReport) Title() string {
	if strings.TrimSpace(r.APIName) == "" {
		return DefaultTitle
	}
	return r.APIName
}

// FieldResult describes the comparison outcome for one schema field.
type FieldResult struct {
	// FieldName identifies the field. The "name" key is accepted as
	// an alias; both absent yields the placeholder glyph.
	FieldName string `json:"field_name"`
	Name      string `json:"name"`

	// Status is the comparison outcome. Arbitrary casing and unknown
	// values are tolerated; unknowns bucket as StatusOther.
	Status Status `json:"status"`

	ExpectedType   string `json:"expected_type"`
	ActualType     string `json:"actual_type"`
	ExpectedFormat string `json:"expected_format"`
	ActualFormat   string `json:"actual_format"`
	ActualInfo     string `json:"actual_info"`

	// Problem description: the first non-empty of issue, description,
	// rationale wins (see Issue).
	IssueText   string `json:"issue"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`

	// Suggestion is an optional remediation hint.
	Suggestion string `json:"suggestion"`

	// Confidence is an optional numeric score, displayed only when
	// present.
	Confidence Score `json:"confidence"`
}

// DisplayName returns the field identifier: field_name, then the name
// alias, then the placeholder glyph.
func (f *FieldResult) DisplayName() string {
	if f.FieldName != "" {
		return f.FieldName
	}
	if f.Name != "" {
		return f.Name
	}
	return Placeholder
}

// Issue returns the first non-empty of issue, description, rationale.
func (f *FieldResult) Issue() string {
	for _, s := range []string{f.IssueText, f.Description, f.Rationale} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Expected joins the expected type and format, dropping empties.
func (f *FieldResult) Expected() string {
	return joinNonEmpty(f.ExpectedType, f.ExpectedFormat)
}

// Actual joins the actual type, format, and info, dropping empties.
func (f *FieldResult) Actual() string {
	return joinNonEmpty(f.ActualType, f.ActualFormat, f.ActualInfo)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Decode parses a validation payload leniently. Unknown keys are
// ignored and optional values default; only input that is not a JSON
// object (or whose fields entry is not an array of objects) fails.
func Decode(data []byte) (*ValidationReport, error) {
	var r ValidationReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding validation report: %w", err)
	}
	return &r, nil
}
