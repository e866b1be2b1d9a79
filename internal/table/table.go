package table

// Table is the buffered result of one load: the header block, the
// body rows, the finalized column width table, and whether loading
// was cut short. The builder owns it during accumulation; after
// Finish it is read-only.
type Table struct {
	// Header holds the comment lines preceding the data, verbatim.
	Header []string
	// Rows holds the body rows. Field counts may differ between rows;
	// ragged input is tolerated, not an error.
	Rows [][]string
	// Widths maps column index (0-based here, 1-based in labels) to
	// the maximum rendered width observed for that column. Entries
	// never shrink.
	Widths []int
	// Truncated reports that the end-of-data sentinel was never seen.
	Truncated bool
}

// Columns returns the widest field count observed across all rows.
func (t *Table) Columns() int {
	return len(t.Widths)
}
