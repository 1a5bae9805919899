// Package format holds the pure display formatters for report
// rendering: date normalization, accuracy percentages, safe numeric
// coercion, soft-wrapping of long tokens, and truncation.
//
// Every function here is total: bad input produces a documented
// fallback string, never an error or panic.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ZeroWidthBreak is the invisible break opportunity inserted by
// SoftWrap so a layout engine can wrap otherwise-unbreakable tokens.
const ZeroWidthBreak = "​"

// Defaults for wrapping and clipping, matching the renderer contract.
const (
	DefaultWrapEvery = 30
	DefaultClipLimit = 2000

	// rawDateLimit bounds unparseable date strings in the metadata
	// line.
	rawDateLimit = 64
)

// dateLayouts are tried in order when parsing validation_date. The
// output layout matches the precision of the input: a date-only value
// renders without a fabricated time component.
var dateLayouts = []struct {
	in  string
	out string
}{
	{time.RFC3339, "2006-01-02 15:04"},
	{"2006-01-02T15:04:05", "2006-01-02 15:04"},
	{"2006-01-02 15:04:05", "2006-01-02 15:04"},
	{"2006-01-02", "2006-01-02"},
}

// Date renders an ISO-8601 timestamp as "YYYY-MM-DD HH:MM" (or just
// the date when the input carried no time). A trailing Z parses as
// UTC. Empty input returns empty; anything unparseable is returned
// verbatim, clipped to a bounded length.
func Date(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout.in, s); err == nil {
			return t.Format(layout.out)
		}
	}
	return Clip(s, rawDateLimit)
}

// Accuracy renders a score for display. nil yields "N/A" and
// non-numeric values are stringified as-is. Numeric values <= 1 are
// fractions (rendered x100); values above 1 are already percentages.
// Both render with one decimal and a % suffix, so Accuracy(0.7) and
// Accuracy(70) are each "70.0%".
func Accuracy(v any) string {
	if v == nil {
		return "N/A"
	}
	f, ok := asFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}
	if f <= 1.0 {
		f *= 100
	}
	return fmt.Sprintf("%.1f%%", f)
}

// SafeInt coerces v to an int, returning def when it cannot.
func SafeInt(v any, def int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return int(f)
		}
	}
	return def
}

// SafeFloat coerces v to a float64, returning def when it cannot.
func SafeFloat(v any, def float64) float64 {
	if f, ok := asFloat(v); ok {
		return f
	}
	return def
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

// longRun matches a run of DefaultWrapEvery non-space characters.
// Rebuilt when a non-default width is requested.
var longRun = regexp.MustCompile(fmt.Sprintf(`(\S{%d})`, DefaultWrapEvery))

// SoftWrap inserts a zero-width break opportunity every `every`
// characters inside whitespace-delimited tokens longer than `every`,
// so the layout engine can wrap long identifiers. Shorter tokens and
// inter-word spacing are untouched.
func SoftWrap(text string, every int) string {
	if text == "" {
		return ""
	}
	if every <= 0 {
		every = DefaultWrapEvery
	}
	re := longRun
	if every != DefaultWrapEvery {
		re = regexp.MustCompile(fmt.Sprintf(`(\S{%d})`, every))
	}
	return re.ReplaceAllString(text, "${1}"+ZeroWidthBreak)
}

// Clip truncates text to limit runes, appending an ellipsis when
// anything was cut. Empty input stays empty.
func Clip(text string, limit int) string {
	if text == "" {
		return ""
	}
	if limit <= 0 {
		limit = DefaultClipLimit
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
