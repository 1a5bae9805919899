package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apiverify/reportgen/internal/format"
	"github.com/apiverify/reportgen/internal/model"
	"github.com/apiverify/reportgen/internal/stats"
)

// Options tune text bounding and, for tests, the clock.
type Options struct {
	// ClipLimit bounds every cell and paragraph value, in runes.
	// Zero means format.DefaultClipLimit.
	ClipLimit int

	// WrapEvery is the soft-wrap interval for long tokens. Zero
	// means format.DefaultWrapEvery.
	WrapEvery int

	// Now supplies the footer timestamp; nil means time.Now.
	Now func() time.Time
}

// cell clips then soft-wraps a value so the engine can always
// paginate without overflow or infinite-width cells.
func (o Options) cell(s string) string {
	return format.SoftWrap(format.Clip(s, o.ClipLimit), o.WrapEvery)
}

func (o Options) accuracy(v any) string {
	return format.Accuracy(v)
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func heading(text string) Block {
	return Block{Kind: KindHeading, Text: text, Level: 2}
}

func paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

func spacer(mm float64) Block {
	return Block{Kind: KindSpacer, Height: mm}
}

// Build assembles the full ordered block list for a report: title,
// metadata, executive summary, key metrics, chart, distribution,
// field details (via the profile), recommendations, and footer.
func Build(r *model.ValidationReport, p Profile, opts Options) []Block {
	counts, total := stats.FromReport(r)
	summary := stats.Summarize(counts, total)

	blocks := []Block{
		{Kind: KindHeading, Text: opts.cell(r.Title()), Level: 1},
		spacer(4),
	}

	if meta := metadataLine(r); meta != "" {
		blocks = append(blocks, paragraph(meta), spacer(3))
	}

	sevColor := severityColors[summary.Severity]
	blocks = append(blocks, Block{
		Kind:  KindParagraph,
		Text:  summary.Text,
		Bold:  true,
		Color: &sevColor,
	}, spacer(5))

	blocks = append(blocks, heading("Validation Summary"), metricsTable(r, counts, total), spacer(5))

	dist := stats.Distribution(counts, total)
	if total > 0 {
		blocks = append(blocks, distributionChart(dist, total), spacer(4))
		for _, line := range dist {
			blocks = append(blocks, paragraph(fmt.Sprintf(
				"%s: %d (%.1f%%)", line.Label, line.Count, line.Percent)))
		}
		blocks = append(blocks, spacer(5))
	}

	blocks = append(blocks, p.FieldBlocks(r.Fields, opts)...)
	blocks = append(blocks, spacer(5))

	blocks = append(blocks, heading("Recommendations"))
	for i, rec := range stats.Recommendations(counts, total) {
		blocks = append(blocks, paragraph(fmt.Sprintf("%d. %s", i+1, opts.cell(rec))))
	}
	if r.SummaryRecommendation != "" {
		blocks = append(blocks, spacer(3), Block{
			Kind: KindParagraph,
			Text: "Summary: " + opts.cell(r.SummaryRecommendation),
			Bold: true,
		})
	}

	blocks = append(blocks, spacer(6), Block{
		Kind: KindFooter,
		Text: "Generated: " + opts.now().Format("2006-01-02 15:04:05 MST"),
	})

	return blocks
}

// metadataLine joins the formatted validation date and version with a
// separator; empty when neither is present.
func metadataLine(r *model.ValidationReport) string {
	var parts []string
	if d := format.Date(r.ValidationDate); d != "" {
		parts = append(parts, "Validation date: "+d)
	}
	if r.Version != "" {
		parts = append(parts, "Version: "+r.Version)
	}
	return strings.Join(parts, " · ")
}

// metricsWidths are the fixed two-column proportions of the key
// metrics table.
var metricsWidths = []float64{0.6, 0.4}

func metricsTable(r *model.ValidationReport, c stats.Counts, total int) Block {
	rows := [][]string{
		{"Accuracy", format.Accuracy(r.AccuracyScore.AsAny())},
		{"Matched Fields", fmt.Sprintf("%d of %d", c.Matched, total)},
		{"Missing Fields", strconv.Itoa(c.Missing)},
		{"Extra Fields", strconv.Itoa(c.Extra)},
		{"Success Rate", fmt.Sprintf("%.1f%%", stats.SuccessRate(c, total))},
	}
	return Block{Kind: KindTable, Table: &Table{
		Header: []string{"Metric", "Value"},
		Widths: metricsWidths,
		Rows:   rows,
	}}
}

func distributionChart(dist []stats.DistributionLine, total int) Block {
	chart := &Chart{Title: "Field Match Distribution", MaxValue: total}
	if chart.MaxValue < 1 {
		chart.MaxValue = 1
	}
	for _, line := range dist {
		color, ok := barColors[line.Label]
		if !ok {
			color = defaultBarColor
		}
		chart.Bars = append(chart.Bars, Bar{
			Label: line.Label,
			Value: line.Count,
			Color: color,
		})
	}
	return Block{Kind: KindChart, Chart: chart}
}
