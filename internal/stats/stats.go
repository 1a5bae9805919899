// Package stats computes derived statistics over a validation
// payload: status counts, success rate, the tiered executive verdict,
// rule-based recommendations, and the priority ordering used by the
// field-detail tables.
package stats

import (
	"fmt"

	"github.com/apiverify/reportgen/internal/model"
)

// Counts is the fixed-shape tally of field statuses. Unset categories
// are zero, never absent.
type Counts struct {
	Matched   int
	Missing   int
	Extra     int
	Unmatched int
	Other     int
}

// Sum returns the total across all buckets.
func (c Counts) Sum() int {
	return c.Matched + c.Missing + c.Extra + c.Unmatched + c.Other
}

// Count tallies field statuses. Matching is case-insensitive (the
// status decoder already normalized casing); unrecognized and absent
// values land in Other.
func Count(fields []model.FieldResult) Counts {
	var c Counts
	for _, f := range fields {
		switch f.Status.Bucket() {
		case model.StatusMatched:
			c.Matched++
		case model.StatusMissing:
			c.Missing++
		case model.StatusExtra:
			c.Extra++
		case model.StatusUnmatched:
			c.Unmatched++
		default:
			c.Other++
		}
	}
	return c
}

// FromReport derives the effective counts and total for a report.
// The validator's declared aggregate counts win when any are present,
// since they describe the full comparison; otherwise the field list
// is tallied directly. The two are never cross-validated.
func FromReport(r *model.ValidationReport) (Counts, int) {
	declared := Counts{
		Matched:   int(r.MatchedFields),
		Missing:   int(r.MissingFields),
		Extra:     int(r.ExtraFields),
		Unmatched: int(r.UnmatchedFields),
	}
	if declared.Sum() > 0 || r.TotalFieldsCompared > 0 {
		total := int(r.TotalFieldsCompared)
		if total == 0 {
			total = declared.Sum()
		}
		return declared, total
	}
	c := Count(r.Fields)
	return c, c.Sum()
}

// SuccessRate is matched/total as a percentage, 0 when total is 0.
func SuccessRate(c Counts, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(c.Matched) / float64(total) * 100
}

// Severity classifies a verdict for downstream styling.
type Severity string

// Severity levels carried by executive summary tiers.
const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Summary is the executive verdict for a validation run.
type Summary struct {
	Text     string
	Severity Severity
}

// Summarize produces the deterministic tiered verdict. The
// tier-to-severity pairing is a fixed lookup, not computed.
func Summarize(c Counts, total int) Summary {
	if total <= 0 {
		return Summary{Text: "No fields to validate.", Severity: SeverityWarning}
	}
	rate := SuccessRate(c, total)
	switch {
	case c.Matched == total:
		return Summary{
			Text:     "Perfect: every compared field matched the expected schema.",
			Severity: SeveritySuccess,
		}
	case rate >= 90:
		return Summary{
			Text:     fmt.Sprintf("Excellent: %.1f%% of fields matched the expected schema.", rate),
			Severity: SeveritySuccess,
		}
	case rate >= 80:
		return Summary{
			Text:     fmt.Sprintf("Good: %.1f%% of fields matched the expected schema.", rate),
			Severity: SeveritySuccess,
		}
	case rate >= 60:
		return Summary{
			Text:     fmt.Sprintf("Fair: only %.1f%% of fields matched the expected schema.", rate),
			Severity: SeverityWarning,
		}
	default:
		return Summary{
			Text:     fmt.Sprintf("Poor: only %.1f%% of fields matched the expected schema.", rate),
			Severity: SeverityError,
		}
	}
}

// Recommendations builds the ordered action list. Each rule is
// evaluated independently and any subset may fire; when none do, a
// single "no action" bullet is emitted.
func Recommendations(c Counts, total int) []string {
	var recs []string
	if c.Missing > 0 {
		recs = append(recs, fmt.Sprintf("Add the %d missing field(s) to the actual schema.", c.Missing))
	}
	if c.Extra > 0 {
		recs = append(recs, fmt.Sprintf("Review the %d unexpected field(s) not present in the expected schema.", c.Extra))
	}
	rate := SuccessRate(c, total)
	if rate < 80 {
		recs = append(recs, "Improve field mapping to raise the match rate above 80%.")
	}
	if rate > 95 {
		recs = append(recs, "Schema quality is excellent; keep the current mapping under regression checks.")
	}
	if len(recs) == 0 {
		recs = append(recs, "No action required.")
	}
	return recs
}

// priorityOrder fixes the bucket ordering for field-detail tables:
// problems first, confirmations last.
var priorityOrder = []model.StatusKind{
	model.StatusMissing,
	model.StatusExtra,
	model.StatusUnmatched,
	model.StatusMatched,
	model.StatusOther,
}

// GroupByPriority reorders fields into priority buckets, preserving
// the original relative order within each bucket. It is a stable
// partition, not a sort: concatenating the buckets reproduces every
// input element exactly once.
func GroupByPriority(fields []model.FieldResult) []model.FieldResult {
	if len(fields) == 0 {
		return nil
	}
	out := make([]model.FieldResult, 0, len(fields))
	for _, kind := range priorityOrder {
		for _, f := range fields {
			if f.Status.Bucket() == kind {
				out = append(out, f)
			}
		}
	}
	return out
}

// DistributionLine is one row of the status distribution: a label,
// its count, and its share of the total.
type DistributionLine struct {
	Label   string
	Count   int
	Percent float64
}

// Distribution lists the non-zero, non-other status buckets with
// their percentage of total. Nil when total is not positive.
func Distribution(c Counts, total int) []DistributionLine {
	if total <= 0 {
		return nil
	}
	entries := []struct {
		label string
		count int
	}{
		{"Matched", c.Matched},
		{"Unmatched", c.Unmatched},
		{"Missing", c.Missing},
		{"Extra", c.Extra},
	}
	var lines []DistributionLine
	for _, e := range entries {
		if e.count == 0 {
			continue
		}
		lines = append(lines, DistributionLine{
			Label:   e.label,
			Count:   e.count,
			Percent: float64(e.count) / float64(total) * 100,
		})
	}
	return lines
}
