package engine

// ============================================================================
// TABLE BUILDER — Produces TableData from Views and Groups
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// ============================================================================

// BuildListTable produces a two-column table with one row per record of
// view: the labelDimension value, then the measure value.
func BuildListTable(title string, view RecordView, labelDimension, labelHeader, measure, valueHeader string) *TableData {
	columns := []Column{
		{Key: labelDimension, Label: labelHeader, Type: "text", Align: "left"},
		{Key: measure, Label: valueHeader, Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		rows = append(rows, []string{
			view.Dimension(i, labelDimension),
			FormatNumber(view.Measure(i, measure), 2),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
	}
}

// BuildGroupTable produces a two-column table with one row per group:
// the group label, then its aggregated value.
func BuildGroupTable(title string, groups []Group, groupHeader, valueHeader string) *TableData {
	columns := []Column{
		{Key: "group", Label: groupHeader, Type: "text", Align: "left"},
		{Key: "value", Label: valueHeader, Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			FormatNumber(g.Value, 2),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
	}
}
