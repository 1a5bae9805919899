// Package render drives go-pdf/fpdf to flow a layout block list onto
// A4 pages and serialize the result to a byte buffer.
//
// The adapter honors an "always return a PDF" contract: any failure
// inside the engine (error state or panic) is collapsed into a
// minimal fallback error document instead of propagating. The only
// error Render returns is ErrNoContent for an empty block list,
// which is a caller programming error rather than an engine failure.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/apiverify/reportgen/internal/format"
	"github.com/apiverify/reportgen/internal/layout"
)

// ErrNoContent is returned when the block list is empty.
var ErrNoContent = errors.New("nothing to render")

// Page geometry in millimetres.
const (
	marginMM      = 16.0
	bottomBreakMM = 20.0
	lineHeightMM  = 4.5
	cellPadMM     = 1.0
)

// fallbackClipLimit bounds the failure description embedded in the
// fallback document.
const fallbackClipLimit = 300

// Text palette.
var (
	colorTextDark  = layout.RGB{R: 44, G: 62, B: 80}
	colorTextMuted = layout.RGB{R: 127, G: 140, B: 141}
	colorHeaderBG  = layout.RGB{R: 30, G: 58, B: 95}
	colorGridLine  = layout.RGB{R: 220, G: 220, B: 220}
)

// Renderer flows blocks into PDF bytes. The zero value is usable;
// one Renderer may serve concurrent calls since each render builds
// its own document.
type Renderer struct {
	// failInject forces renderDoc to fail after building, so tests
	// can exercise the fallback path. Set via export_test.go only.
	failInject error
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render flows the block list into a PDF. On engine failure the
// returned bytes are the fallback error document; the error return is
// non-nil only for an empty block list.
func (r *Renderer) Render(blocks []layout.Block) ([]byte, error) {
	if len(blocks) == 0 {
		return nil, ErrNoContent
	}
	data, err := r.renderDoc(blocks)
	if err != nil {
		return fallbackDoc(err), nil
	}
	return data, nil
}

// renderDoc builds the real document. Panics from the engine are
// recovered into errors so Render can substitute the fallback.
func (r *Renderer) renderDoc(blocks []layout.Block) (data []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render engine panic: %v", p)
		}
	}()

	d := newDoc()
	for _, b := range blocks {
		placeBlock(d, b)
	}
	if r.failInject != nil {
		return nil, r.failInject
	}

	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// doc pairs the engine with its codepage translator. The core fonts
// are cp1252; the layout text is UTF-8 and carries placeholder glyphs
// outside ASCII.
type doc struct {
	*fpdf.Fpdf
	tr func(string) string
}

// text prepares layout text for the engine: strip soft-wrap markers,
// then translate to the font codepage.
func (d *doc) text(s string) string {
	return d.tr(clean(s))
}

func newDoc() *doc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, bottomBreakMM)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(colorTextMuted.R, colorTextMuted.G, colorTextMuted.B)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return &doc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func placeBlock(pdf *doc, b layout.Block) {
	switch b.Kind {
	case layout.KindHeading:
		if b.Level <= 1 {
			pdf.SetFont("Arial", "B", 18)
		} else {
			pdf.SetFont("Arial", "B", 13)
			pdf.Ln(2)
		}
		pdf.SetTextColor(colorTextDark.R, colorTextDark.G, colorTextDark.B)
		pdf.MultiCell(0, 8, pdf.text(b.Text), "", "L", false)
		pdf.Ln(1)

	case layout.KindParagraph:
		style := ""
		if b.Bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		c := colorTextDark
		if b.Color != nil {
			c = *b.Color
		}
		pdf.SetTextColor(c.R, c.G, c.B)
		pdf.MultiCell(0, 5, pdf.text(b.Text), "", "L", false)

	case layout.KindSpacer:
		pdf.Ln(b.Height)

	case layout.KindTable:
		if b.Table != nil {
			drawTable(pdf, b.Table)
		}

	case layout.KindChart:
		if b.Chart != nil {
			drawChart(pdf, b.Chart)
		}

	case layout.KindFooter:
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(colorTextMuted.R, colorTextMuted.G, colorTextMuted.B)
		pdf.MultiCell(0, 5, pdf.text(b.Text), "", "L", false)
	}
}

// clean strips the zero-width break markers inserted by SoftWrap:
// core PDF fonts cannot encode U+200B, and fpdf splits over-wide
// tokens at the cell boundary on its own.
func clean(s string) string {
	return strings.ReplaceAll(s, format.ZeroWidthBreak, "")
}

func usableWidth(pdf *doc) float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return pageW - left - right
}

// drawTable renders a grid with a distinct header row, proportional
// column widths, per-row background tints, and page breaks that
// repeat the header.
func drawTable(pdf *doc, t *layout.Table) {
	usable := usableWidth(pdf)
	widths := make([]float64, len(t.Widths))
	for i, w := range t.Widths {
		widths[i] = usable * w
	}

	drawHeader := func() {
		pdf.SetFillColor(colorHeaderBG.R, colorHeaderBG.G, colorHeaderBG.B)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(colorGridLine.R, colorGridLine.G, colorGridLine.B)
		pdf.SetFont("Arial", "B", 9)
		for i, h := range t.Header {
			pdf.CellFormat(widths[i], 7, pdf.text(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	drawHeader()

	_, pageH := pdf.GetPageSize()
	left, _, _, _ := pdf.GetMargins()
	limit := pageH - bottomBreakMM

	pdf.SetFont("Arial", "", 9)
	for rowIdx, row := range t.Rows {
		// Wrap each cell to its column and size the row to the
		// tallest cell.
		lines := make([][]string, len(row))
		maxLines := 1
		for i, cell := range row {
			lines[i] = pdf.SplitText(pdf.text(cell), widths[i]-2*cellPadMM)
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}
		rowH := float64(maxLines)*lineHeightMM + 2*cellPadMM

		if pdf.GetY()+rowH > limit {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Arial", "", 9)
		}

		y := pdf.GetY()
		x := left
		for i := range row {
			if rowIdx < len(t.Tints) && t.Tints[rowIdx] != nil {
				tint := t.Tints[rowIdx]
				pdf.SetFillColor(tint.R, tint.G, tint.B)
				pdf.Rect(x, y, widths[i], rowH, "FD")
			} else {
				pdf.Rect(x, y, widths[i], rowH, "D")
			}
			pdf.SetTextColor(colorTextDark.R, colorTextDark.G, colorTextDark.B)
			pdf.SetXY(x+cellPadMM, y+cellPadMM)
			for _, line := range lines[i] {
				pdf.CellFormat(widths[i]-2*cellPadMM, lineHeightMM, line, "", 2, "L", false, 0, "")
			}
			x += widths[i]
		}
		pdf.SetXY(left, y+rowH)
	}
	pdf.Ln(2)
}

// drawChart renders a simple vertical bar chart with a value grid,
// per-bar colors, and labels, in the manner of the summary charts of
// monitoring reports.
func drawChart(pdf *doc, c *layout.Chart) {
	const chartH = 55.0
	usable := usableWidth(pdf)
	left, _, _, _ := pdf.GetMargins()

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+chartH+25 > pageH-bottomBreakMM {
		pdf.AddPage()
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(colorTextDark.R, colorTextDark.G, colorTextDark.B)
	pdf.CellFormat(0, 7, pdf.text(c.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	top := pdf.GetY()
	base := top + chartH
	plotLeft := left + 12
	plotW := usable - 12

	maxVal := c.MaxValue
	if maxVal < 1 {
		maxVal = 1
	}

	// Horizontal grid lines with axis values.
	pdf.SetFont("Arial", "", 7)
	const gridLines = 5
	for i := 0; i <= gridLines; i++ {
		frac := float64(i) / gridLines
		gy := base - frac*chartH
		pdf.SetDrawColor(colorGridLine.R, colorGridLine.G, colorGridLine.B)
		pdf.SetLineWidth(0.1)
		pdf.Line(plotLeft, gy, plotLeft+plotW, gy)
		pdf.SetTextColor(colorTextMuted.R, colorTextMuted.G, colorTextMuted.B)
		pdf.SetXY(left-2, gy-2)
		pdf.CellFormat(12, 4, fmt.Sprintf("%.0f", frac*float64(maxVal)), "", 0, "R", false, 0, "")
	}

	// Bars with value labels above and category labels below.
	n := len(c.Bars)
	if n > 0 {
		slot := plotW / float64(n)
		barW := slot * 0.4
		for i, bar := range c.Bars {
			h := chartH * float64(bar.Value) / float64(maxVal)
			if h > chartH {
				h = chartH
			}
			x := plotLeft + slot*float64(i) + (slot-barW)/2

			pdf.SetFillColor(bar.Color.R, bar.Color.G, bar.Color.B)
			pdf.Rect(x, base-h, barW, h, "F")

			pdf.SetFont("Arial", "B", 8)
			pdf.SetTextColor(colorTextDark.R, colorTextDark.G, colorTextDark.B)
			pdf.SetXY(x-5, base-h-5)
			pdf.CellFormat(barW+10, 4, fmt.Sprintf("%d", bar.Value), "", 0, "C", false, 0, "")

			pdf.SetFont("Arial", "", 8)
			pdf.SetXY(x-5, base+1)
			pdf.CellFormat(barW+10, 4, pdf.text(bar.Label), "", 0, "C", false, 0, "")
		}
	}

	pdf.SetY(base + 8)
}

// fallbackDoc builds the minimal error report substituted when the
// engine fails, so the caller still receives a well-formed PDF.
func fallbackDoc(cause error) []byte {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(colorTextDark.R, colorTextDark.G, colorTextDark.B)
	pdf.MultiCell(0, 8, "Report Generation Failed", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(format.Clip(cause.Error(), fallbackClipLimit)), "", "L", false)
	pdf.Ln(4)

	pdf.SetTextColor(colorTextMuted.R, colorTextMuted.G, colorTextMuted.B)
	pdf.MultiCell(0, 5,
		"Please retry the request. If the problem persists, contact the service operator with the message above.",
		"", "L", false)

	var buf bytes.Buffer
	// A static document cannot realistically fail to serialize;
	// return whatever was produced either way.
	_ = pdf.Output(&buf)
	return buf.Bytes()
}
