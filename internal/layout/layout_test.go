package layout

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/apiverify/reportgen/internal/model"
)

func testReport() *model.ValidationReport {
	return &model.ValidationReport{
		APIName:             "Test API",
		ValidationDate:      "2025-08-07T10:30:00Z",
		TotalFieldsCompared: 10,
		MatchedFields:       7,
		UnmatchedFields:     3,
		AccuracyScore:       model.NumericScore(70),
		Fields: []model.FieldResult{
			{
				FieldName:    "user_id",
				Status:       model.ParseStatus("unmatched"),
				IssueText:    "Type mismatch",
				ExpectedType: "integer",
				ActualType:   "string",
				Suggestion:   "Convert to integer",
			},
		},
		SummaryRecommendation: "Fix type mismatches.",
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)
}

func buildFull(t *testing.T, r *model.ValidationReport) []Block {
	t.Helper()
	return Build(r, FullProfile{}, Options{Now: fixedClock})
}

func findHeading(blocks []Block, text string) *Block {
	for i, b := range blocks {
		if b.Kind == KindHeading && b.Text == text {
			return &blocks[i]
		}
	}
	return nil
}

func firstTable(blocks []Block) *Table {
	for _, b := range blocks {
		if b.Kind == KindTable {
			return b.Table
		}
	}
	return nil
}

func TestBuild_TitleFirst(t *testing.T) {
	blocks := buildFull(t, testReport())
	if len(blocks) == 0 {
		t.Fatal("no blocks")
	}
	if blocks[0].Kind != KindHeading || blocks[0].Level != 1 || blocks[0].Text != "Test API" {
		t.Errorf("first block = %+v, want level-1 heading %q", blocks[0], "Test API")
	}
}

func TestBuild_DefaultTitle(t *testing.T) {
	r := testReport()
	r.APIName = ""
	blocks := buildFull(t, r)
	if blocks[0].Text != model.DefaultTitle {
		t.Errorf("title = %q, want default", blocks[0].Text)
	}
}

func TestBuild_MetadataLine(t *testing.T) {
	r := testReport()
	r.Version = "v2"
	blocks := buildFull(t, r)
	var found bool
	for _, b := range blocks {
		if b.Kind == KindParagraph && strings.HasPrefix(b.Text, "Validation date: ") {
			found = true
			if !strings.Contains(b.Text, "2025-08-07 10:30") {
				t.Errorf("metadata date not normalized: %q", b.Text)
			}
			if !strings.Contains(b.Text, "Version: v2") {
				t.Errorf("metadata missing version: %q", b.Text)
			}
		}
	}
	if !found {
		t.Error("no metadata paragraph emitted")
	}
}

func TestBuild_MetadataOmittedWhenEmpty(t *testing.T) {
	r := testReport()
	r.ValidationDate = ""
	blocks := buildFull(t, r)
	for _, b := range blocks {
		if b.Kind == KindParagraph && strings.HasPrefix(b.Text, "Validation date") {
			t.Errorf("metadata emitted for empty date: %q", b.Text)
		}
	}
}

func TestBuild_SummaryStyled(t *testing.T) {
	blocks := buildFull(t, testReport())
	var summary *Block
	for i, b := range blocks {
		if b.Kind == KindParagraph && strings.HasPrefix(b.Text, "Fair") {
			summary = &blocks[i]
			break
		}
	}
	if summary == nil {
		t.Fatal("no executive summary paragraph (7/10 should read Fair)")
	}
	if !summary.Bold || summary.Color == nil {
		t.Errorf("summary not emphasized: %+v", summary)
	}
	if *summary.Color != (RGB{241, 196, 15}) {
		t.Errorf("summary color = %+v, want warning yellow", *summary.Color)
	}
}

func TestBuild_MetricsTable(t *testing.T) {
	blocks := buildFull(t, testReport())
	if findHeading(blocks, "Validation Summary") == nil {
		t.Fatal("no Validation Summary heading")
	}
	tbl := firstTable(blocks)
	if tbl == nil {
		t.Fatal("no metrics table")
	}
	if len(tbl.Header) != 2 || tbl.Header[0] != "Metric" {
		t.Errorf("metrics header = %v", tbl.Header)
	}
	want := [][]string{
		{"Accuracy", "70.0%"},
		{"Matched Fields", "7 of 10"},
		{"Missing Fields", "0"},
		{"Extra Fields", "0"},
		{"Success Rate", "70.0%"},
	}
	if len(tbl.Rows) != len(want) {
		t.Fatalf("metrics rows = %d, want %d", len(tbl.Rows), len(want))
	}
	for i, row := range want {
		if tbl.Rows[i][0] != row[0] || tbl.Rows[i][1] != row[1] {
			t.Errorf("metrics row %d = %v, want %v", i, tbl.Rows[i], row)
		}
	}
}

func TestBuild_Chart(t *testing.T) {
	blocks := buildFull(t, testReport())
	var chart *Chart
	for _, b := range blocks {
		if b.Kind == KindChart {
			chart = b.Chart
		}
	}
	if chart == nil {
		t.Fatal("no chart block for a populated report")
	}
	if chart.Title != "Field Match Distribution" {
		t.Errorf("chart title = %q", chart.Title)
	}
	if chart.MaxValue != 10 {
		t.Errorf("chart max = %d, want total 10", chart.MaxValue)
	}
	if len(chart.Bars) != 2 {
		t.Fatalf("bars = %d, want matched and unmatched only", len(chart.Bars))
	}
	if chart.Bars[0].Label != "Matched" || chart.Bars[0].Value != 7 {
		t.Errorf("first bar = %+v", chart.Bars[0])
	}
}

func TestBuild_NoChartWhenEmpty(t *testing.T) {
	blocks := buildFull(t, &model.ValidationReport{})
	for _, b := range blocks {
		if b.Kind == KindChart {
			t.Error("chart emitted for empty report")
		}
	}
}

func TestBuild_RecommendationsNumbered(t *testing.T) {
	blocks := buildFull(t, testReport())
	if findHeading(blocks, "Recommendations") == nil {
		t.Fatal("no Recommendations heading")
	}
	var recs []string
	for _, b := range blocks {
		if b.Kind == KindParagraph && strings.HasPrefix(b.Text, "1. ") {
			recs = append(recs, b.Text)
		}
	}
	if len(recs) != 1 {
		t.Errorf("numbered recommendation paragraphs = %v", recs)
	}
}

func TestBuild_SummaryRecommendation(t *testing.T) {
	blocks := buildFull(t, testReport())
	var found bool
	for _, b := range blocks {
		if b.Kind == KindParagraph && strings.HasPrefix(b.Text, "Summary: Fix type mismatches.") {
			found = true
			if !b.Bold {
				t.Error("summary recommendation not bold")
			}
		}
	}
	if !found {
		t.Error("summary_recommendation not rendered")
	}
}

func TestBuild_FooterLast(t *testing.T) {
	blocks := buildFull(t, testReport())
	last := blocks[len(blocks)-1]
	if last.Kind != KindFooter {
		t.Fatalf("last block kind = %q, want footer", last.Kind)
	}
	if last.Text != "Generated: 2025-08-07 12:00:00 UTC" {
		t.Errorf("footer = %q", last.Text)
	}
}

func TestFullProfile_Table(t *testing.T) {
	blocks := FullProfile{}.FieldBlocks(testReport().Fields, Options{})
	if findHeading(blocks, "Field Details") == nil {
		t.Fatal("no Field Details heading")
	}
	tbl := firstTable(blocks)
	if tbl == nil {
		t.Fatal("no field table")
	}
	if len(tbl.Header) != 6 {
		t.Fatalf("header = %v, want six columns", tbl.Header)
	}
	row := tbl.Rows[0]
	if row[0] != "user_id" || row[3] != "integer" || row[4] != "string" {
		t.Errorf("row = %v", row)
	}
	if tbl.Tints[0] == nil || *tbl.Tints[0] != (RGB{253, 236, 234}) {
		t.Errorf("unmatched row tint = %v, want light red", tbl.Tints[0])
	}
}

func TestFullProfile_ConfidenceInStatusCell(t *testing.T) {
	fields := []model.FieldResult{{
		FieldName:  "email",
		Status:     model.ParseStatus("matched"),
		Confidence: model.NumericScore(0.95),
	}}
	blocks := FullProfile{}.FieldBlocks(fields, Options{})
	tbl := firstTable(blocks)
	if got := tbl.Rows[0][1]; got != "matched (95.0%)" {
		t.Errorf("status cell = %q", got)
	}
}

func TestFullProfile_PlaceholdersForMissingValues(t *testing.T) {
	// A field with no status at all still gets a row; its status cell
	// shows the placeholder glyph.
	blocks := FullProfile{}.FieldBlocks([]model.FieldResult{{FieldName: "x"}}, Options{})
	tbl := firstTable(blocks)
	if len(tbl.Rows) != 1 {
		t.Fatalf("rows = %d, want the status-less field kept", len(tbl.Rows))
	}
	row := tbl.Rows[0]
	for i := 1; i < len(row); i++ {
		if row[i] != model.Placeholder {
			t.Errorf("column %d = %q, want placeholder", i, row[i])
		}
	}
}

func TestFullProfile_Empty(t *testing.T) {
	blocks := FullProfile{}.FieldBlocks(nil, Options{})
	if len(blocks) != 1 || blocks[0].Text != "No field-level details provided." {
		t.Errorf("empty field list blocks = %+v", blocks)
	}
}

func TestFullProfile_WidthsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range fullWidths {
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("fullWidths sum = %v", sum)
	}
}

func TestGroupedProfile_CategoryTables(t *testing.T) {
	fields := []model.FieldResult{
		{FieldName: "a", Status: model.ParseStatus("unmatched")},
		{FieldName: "b", Status: model.ParseStatus("missing")},
		{FieldName: "c", Status: model.ParseStatus("matched")},
	}
	blocks := GroupedProfile{}.FieldBlocks(fields, Options{})
	if findHeading(blocks, "Unmatched Fields") == nil {
		t.Error("no Unmatched Fields table")
	}
	if findHeading(blocks, "Missing Fields") == nil {
		t.Error("no Missing Fields table")
	}
	if findHeading(blocks, "Extra Fields") != nil {
		t.Error("empty Extra category not skipped")
	}
}

func TestGroupedProfile_MissingHasNoActualColumn(t *testing.T) {
	fields := []model.FieldResult{
		{FieldName: "b", Status: model.ParseStatus("missing"), ActualType: "should not appear"},
	}
	blocks := GroupedProfile{}.FieldBlocks(fields, Options{})
	tbl := firstTable(blocks)
	for _, h := range tbl.Header {
		if h == "Actual" {
			t.Errorf("missing-fields header contains Actual: %v", tbl.Header)
		}
	}
	if len(tbl.Header) != 4 {
		t.Errorf("header = %v, want four columns", tbl.Header)
	}
}

func TestGroupedProfile_ExtraHasNoExpectedColumn(t *testing.T) {
	fields := []model.FieldResult{
		{FieldName: "c", Status: model.ParseStatus("extra")},
	}
	blocks := GroupedProfile{}.FieldBlocks(fields, Options{})
	tbl := firstTable(blocks)
	for _, h := range tbl.Header {
		if h == "Expected" {
			t.Errorf("extra-fields header contains Expected: %v", tbl.Header)
		}
	}
}

func TestGroupedProfile_OnlyMatchedFields(t *testing.T) {
	fields := []model.FieldResult{
		{FieldName: "c", Status: model.ParseStatus("matched")},
	}
	blocks := GroupedProfile{}.FieldBlocks(fields, Options{})
	if len(blocks) != 1 || blocks[0].Text != "No unmatched, missing, or extra fields." {
		t.Errorf("blocks = %+v, want the all-clear paragraph", blocks)
	}
}

func TestProfileByName(t *testing.T) {
	p, err := ProfileByName("")
	if err != nil || p.Name() != ProfileFull {
		t.Errorf("empty name resolved to %v, %v", p, err)
	}
	p, err = ProfileByName("grouped")
	if err != nil || p.Name() != ProfileGrouped {
		t.Errorf("grouped resolved to %v, %v", p, err)
	}
	if _, err = ProfileByName("fancy"); err == nil {
		t.Error("unknown profile accepted")
	}
}

func TestStatusTint(t *testing.T) {
	tests := []struct {
		status string
		want   *RGB
	}{
		{"UNMATCHED", &RGB{253, 236, 234}},
		{"matched", &RGB{232, 245, 233}},
		{"missing", &RGB{255, 243, 224}},
		{"extra", &RGB{227, 242, 253}},
		{"unknown", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := StatusTint(tt.status)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("StatusTint(%q) = %+v, want nil", tt.status, got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("StatusTint(%q) = %+v, want %+v", tt.status, got, tt.want)
		}
	}
}

func TestBuild_LongTokensGetBreakOpportunities(t *testing.T) {
	r := testReport()
	r.Fields[0].FieldName = strings.Repeat("x", 64)
	blocks := buildFull(t, r)
	var cell string
	for _, b := range blocks {
		if b.Kind == KindTable && len(b.Table.Header) == 6 {
			cell = b.Table.Rows[0][0]
		}
	}
	if !strings.Contains(cell, "​") {
		t.Error("long field name carries no soft-wrap break points")
	}
}

func TestBuild_ClipLimitApplies(t *testing.T) {
	r := testReport()
	r.Fields[0].IssueText = strings.Repeat("y", 100)
	blocks := Build(r, FullProfile{}, Options{ClipLimit: 10, Now: fixedClock})
	for _, b := range blocks {
		if b.Kind == KindTable && len(b.Table.Header) == 6 {
			if got := b.Table.Rows[0][2]; got != strings.Repeat("y", 10)+"…" {
				t.Errorf("issue cell = %q, want clipped to 10 runes", got)
			}
		}
	}
}
