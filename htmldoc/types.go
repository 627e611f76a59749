// Package htmldoc loads the tables of an HTML export into a Document.
package htmldoc

// ParsedTable represents a table extracted from HTML.
type ParsedTable struct {
	Rows      [][]TableCell
	HasHeader bool
}

// TableCell represents a cell in an HTML table.
type TableCell struct {
	Text     string
	IsHeader bool
	ColSpan  int
}

// rowWidth returns the number of grid columns the row spans.
func rowWidth(row []TableCell) int {
	w := 0
	for _, c := range row {
		w += c.ColSpan
	}
	return w
}
