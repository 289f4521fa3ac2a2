package response

// ============================================================================
// TABLE BUILDER
// ============================================================================

// NewTable returns an empty table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Rows: [][]any{}}
}

// Add appends a row and returns the table for chaining.
func (t *Table) Add(cells ...any) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}
