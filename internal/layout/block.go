// Package layout assembles the ordered block list for a validation
// report, independent of any rendering engine. Blocks carry computed
// column proportions, per-row tints, and pre-clipped, soft-wrapped
// text so that any paginating engine can flow them without overflow.
package layout

import (
	"strings"

	"github.com/apiverify/reportgen/internal/stats"
)

// Kind discriminates block variants.
type Kind string

// Block kinds emitted by the builder.
const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindSpacer    Kind = "spacer"
	KindTable     Kind = "table"
	KindChart     Kind = "chart"
	KindFooter    Kind = "footer"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// Block is one element of the document flow. Exactly the fields for
// its Kind are populated.
type Block struct {
	Kind Kind

	// Text for headings, paragraphs, and the footer.
	Text string

	// Level distinguishes the title (1) from section headings (2).
	Level int

	// Bold marks emphasized paragraphs.
	Bold bool

	// Color overrides the default text color (severity styling).
	Color *RGB

	// Height in millimetres for spacers.
	Height float64

	Table *Table
	Chart *Chart
}

// Table is a grid with column widths expressed as fractions of the
// usable page width.
type Table struct {
	Header []string
	Widths []float64
	Rows   [][]string

	// Tints holds an optional background color per data row.
	Tints []*RGB
}

// Chart is a simple vertical bar chart.
type Chart struct {
	Title string
	Bars  []Bar

	// MaxValue scales the value axis; at least 1.
	MaxValue int
}

// Bar is a single labeled chart bar.
type Bar struct {
	Label string
	Value int
	Color RGB
}

// Severity text colors for the executive summary line.
var severityColors = map[stats.Severity]RGB{
	stats.SeveritySuccess: {46, 204, 113},
	stats.SeverityWarning: {241, 196, 15},
	stats.SeverityError:   {231, 76, 60},
}

// Solid bar colors per distribution label.
var barColors = map[string]RGB{
	"Matched":   {46, 204, 113},
	"Unmatched": {231, 76, 60},
	"Missing":   {230, 126, 34},
	"Extra":     {52, 152, 219},
}

var defaultBarColor = RGB{127, 140, 141}

// tintRule pairs a lowercase status substring with a row background.
// Rules are matched in order and the first hit wins, so "unmatch"
// must precede "match".
type tintRule struct {
	substr string
	color  RGB
}

var tintRules = []tintRule{
	{"unmatch", RGB{253, 236, 234}}, // light red
	{"missing", RGB{255, 243, 224}}, // light orange
	{"extra", RGB{227, 242, 253}},   // light blue
	{"match", RGB{232, 245, 233}},   // light green
}

// StatusTint returns the row background for a raw status value, or
// nil when no rule matches. Matching is a substring test on the
// lowercased status; first rule wins.
func StatusTint(status string) *RGB {
	lower := strings.ToLower(status)
	for _, r := range tintRules {
		if strings.Contains(lower, r.substr) {
			c := r.color
			return &c
		}
	}
	return nil
}
