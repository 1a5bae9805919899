package layout

import (
	"fmt"

	"github.com/apiverify/reportgen/internal/model"
	"github.com/apiverify/reportgen/internal/stats"
)

// Profile selects how the field-detail section is laid out. The two
// implementations are competing designs, selected at configuration
// time and never composed.
type Profile interface {
	// Name is the configuration key for this profile.
	Name() string

	// FieldBlocks produces the field-detail blocks for the report.
	FieldBlocks(fields []model.FieldResult, opts Options) []Block
}

// Profile configuration keys.
const (
	ProfileFull    = "full"
	ProfileGrouped = "grouped"
)

// ProfileByName resolves a configuration value to a profile.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "", ProfileFull:
		return FullProfile{}, nil
	case ProfileGrouped:
		return GroupedProfile{}, nil
	}
	return nil, fmt.Errorf("unknown layout profile %q: must be %q or %q",
		name, ProfileFull, ProfileGrouped)
}

// FullProfile renders one combined six-column table over all fields,
// ordered by priority, with per-row status tints. This is the default
// deployment profile.
type FullProfile struct{}

// Name implements Profile.
func (FullProfile) Name() string { return ProfileFull }

// fullWidths are the fixed column proportions for the combined table:
// Field, Status, Issue, Expected, Actual, Suggestion.
var fullWidths = []float64{0.16, 0.12, 0.24, 0.14, 0.14, 0.20}

// FieldBlocks implements Profile.
func (FullProfile) FieldBlocks(fields []model.FieldResult, opts Options) []Block {
	if len(fields) == 0 {
		return []Block{paragraph("No field-level details provided.")}
	}

	tbl := &Table{
		Header: []string{"Field", "Status", "Issue", "Expected", "Actual", "Suggestion"},
		Widths: fullWidths,
	}
	for _, f := range stats.GroupByPriority(fields) {
		status := f.Status.Display()
		if f.Confidence.Set {
			status = fmt.Sprintf("%s (%s)", status, opts.accuracy(f.Confidence.AsAny()))
		}
		tbl.Rows = append(tbl.Rows, []string{
			opts.cell(f.DisplayName()),
			opts.cell(status),
			opts.cell(orPlaceholder(f.Issue())),
			opts.cell(orPlaceholder(f.Expected())),
			opts.cell(orPlaceholder(f.Actual())),
			opts.cell(orPlaceholder(f.Suggestion)),
		})
		tbl.Tints = append(tbl.Tints, StatusTint(f.Status.Raw))
	}

	return []Block{
		heading("Field Details"),
		{Kind: KindTable, Table: tbl},
	}
}

// GroupedProfile renders one table per problem category, each under
// its own heading and skipped entirely when empty. The missing table
// has no Actual column since nothing was observed.
type GroupedProfile struct{}

// Name implements Profile.
func (GroupedProfile) Name() string { return ProfileGrouped }

// FieldBlocks implements Profile.
func (GroupedProfile) FieldBlocks(fields []model.FieldResult, opts Options) []Block {
	if len(fields) == 0 {
		return []Block{paragraph("No field-level details provided.")}
	}

	var blocks []Block
	blocks = append(blocks, groupedTable(fields, model.StatusUnmatched, "Unmatched Fields", opts)...)
	blocks = append(blocks, groupedTable(fields, model.StatusMissing, "Missing Fields", opts)...)
	blocks = append(blocks, groupedTable(fields, model.StatusExtra, "Extra Fields", opts)...)
	if len(blocks) == 0 {
		blocks = append(blocks, paragraph("No unmatched, missing, or extra fields."))
	}
	return blocks
}

func groupedTable(fields []model.FieldResult, kind model.StatusKind, title string, opts Options) []Block {
	var members []model.FieldResult
	for _, f := range fields {
		if f.Status.Bucket() == kind {
			members = append(members, f)
		}
	}
	if len(members) == 0 {
		return nil
	}

	tbl := &Table{}
	switch kind {
	case model.StatusMissing:
		// No Actual column: a missing field has nothing observed.
		tbl.Header = []string{"Field", "Issue", "Expected", "Suggestion"}
		tbl.Widths = []float64{0.22, 0.30, 0.20, 0.28}
	case model.StatusExtra:
		// No Expected column: an extra field was never specified.
		tbl.Header = []string{"Field", "Issue", "Actual", "Suggestion"}
		tbl.Widths = []float64{0.22, 0.30, 0.20, 0.28}
	default:
		tbl.Header = []string{"Field", "Issue", "Expected", "Actual", "Suggestion"}
		tbl.Widths = []float64{0.18, 0.25, 0.15, 0.15, 0.27}
	}

	for _, f := range members {
		row := []string{
			opts.cell(f.DisplayName()),
			opts.cell(orPlaceholder(f.Issue())),
		}
		switch kind {
		case model.StatusMissing:
			row = append(row, opts.cell(orPlaceholder(f.Expected())))
		case model.StatusExtra:
			row = append(row, opts.cell(orPlaceholder(f.Actual())))
		default:
			row = append(row,
				opts.cell(orPlaceholder(f.Expected())),
				opts.cell(orPlaceholder(f.Actual())))
		}
		row = append(row, opts.cell(orPlaceholder(f.Suggestion)))
		tbl.Rows = append(tbl.Rows, row)
		tbl.Tints = append(tbl.Tints, StatusTint(f.Status.Raw))
	}

	return []Block{heading(title), {Kind: KindTable, Table: tbl}}
}

func orPlaceholder(s string) string {
	if s == "" {
		return model.Placeholder
	}
	return s
}
