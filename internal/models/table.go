package models

// Table is the raw content of one sheet: a header and rows of typed cells.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}

// Index returns the position of column name, or -1 if absent.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	return -1
}

// AppendRow adds a row, padding it with missing cells up to the column count.
// Cells beyond the column count are dropped.
func (t *Table) AppendRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Missing()
		}
	}

	t.Rows = append(t.Rows, row)
}
