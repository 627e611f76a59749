package xlsx

import (
	"fmt"
	"strconv"

	"github.com/tsawler/manifest/model"
)

// CellType is the kind of value a worksheet cell holds.
type CellType int

const (
	CellTypeEmpty CellType = iota
	CellTypeString
	CellTypeNumber // kept as the raw text Excel stored
	CellTypeBoolean
	CellTypeError
)

// String returns the name of the cell type.
func (t CellType) String() string {
	switch t {
	case CellTypeEmpty:
		return "empty"
	case CellTypeString:
		return "string"
	case CellTypeNumber:
		return "number"
	case CellTypeBoolean:
		return "boolean"
	case CellTypeError:
		return "error"
	}
	return "unknown"
}

// Cell is a single resolved worksheet value.
type Cell struct {
	Value string
	Type  CellType
}

// IsEmpty reports whether the cell carries no text.
func (c Cell) IsEmpty() bool {
	return c.Type == CellTypeEmpty || c.Value == ""
}

// Sheet is a worksheet laid out as a dense grid. Row i of the grid is
// spreadsheet row i+1; every row has Width cells.
type Sheet struct {
	Name  string
	Index int
	Width int
	Rows  [][]Cell
}

// Document converts the sheet to a Document of the sheet's width. Rows
// holding no value are dropped, the same way blank lines vanish from a
// delimited export. Empty cells become null.
func (s *Sheet) Document() *model.Document {
	doc := &model.Document{Width: s.Width}
	for _, cells := range s.Rows {
		row := make(model.Row, s.Width)
		present := false
		for j, c := range cells {
			if j >= s.Width || c.IsEmpty() {
				continue
			}
			row[j] = model.Text(c.Value)
			present = true
		}
		if present {
			doc.Rows = append(doc.Rows, row)
		}
	}
	return doc
}

// ParseCellRef splits an A1-style reference into a 0-based column and row.
// Column letters are case-insensitive.
func ParseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}

	col = ColumnIndex(ref[:i])
	n, err := strconv.Atoi(ref[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid row in cell reference %q", ref)
	}
	return col, n - 1, nil
}

// ColumnIndex converts column letters to a 0-based index: A is 0, Z is 25,
// AA is 26. It returns -1 for anything that is not letters.
func ColumnIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return -1
		}
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
