package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRaggedRow is returned when a Row's length differs from its Document's
// declared width. Loaders are expected to pad rows before building a Document.
var ErrRaggedRow = errors.New("row length does not match document width")

// Cell is a nullable text value. The zero value is a null cell.
type Cell struct {
	Text  string
	Valid bool // false means the cell is absent
}

// Null is the absent cell.
var Null = Cell{}

// Text returns a present cell holding s.
func Text(s string) Cell {
	return Cell{Text: s, Valid: true}
}

// IsNull reports whether the cell is absent.
func (c Cell) IsNull() bool { return !c.Valid }

// String returns the cell text, or "" for a null cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Text
}

// Row is an ordered sequence of cells aligned by column index.
type Row []Cell

// NonNull returns the number of present cells in the row.
func (r Row) NonNull() int {
	n := 0
	for _, c := range r {
		if c.Valid {
			n++
		}
	}
	return n
}

// At returns the cell at col, or Null when col is out of range.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) {
		return Null
	}
	return r[col]
}

// Strings returns the row as plain strings, null cells as "".
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Document is an ordered sequence of rows sharing one declared width.
// A Document is read-only once built.
type Document struct {
	Width int
	Rows  []Row
}

// NewDocument builds a Document, rejecting any row whose length is not width.
func NewDocument(width int, rows []Row) (*Document, error) {
	if width < 0 {
		return nil, fmt.Errorf("negative document width %d", width)
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), width, ErrRaggedRow)
		}
	}
	return &Document{Width: width, Rows: rows}, nil
}

// FromStrings builds a Document from raw string rows. The width is the longest
// row; shorter rows are padded with null cells and empty strings become null.
func FromStrings(rows [][]string) *Document {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	doc := &Document{Width: width, Rows: make([]Row, len(rows))}
	for i, r := range rows {
		row := make(Row, width)
		for j, s := range r {
			if s != "" {
				row[j] = Text(s)
			}
		}
		doc.Rows[i] = row
	}
	return doc
}

// RowCount returns the number of rows.
func (d *Document) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// IsEmpty reports whether the document has no rows.
func (d *Document) IsEmpty() bool {
	return d.RowCount() == 0
}

// Cell returns the cell at (row, col), or Null when either index is out of range.
func (d *Document) Cell(row, col int) Cell {
	if d == nil || row < 0 || row >= len(d.Rows) {
		return Null
	}
	return d.Rows[row].At(col)
}

// Validate checks the width invariant on an already-built Document.
func (d *Document) Validate() error {
	if d == nil {
		return nil
	}
	_, err := NewDocument(d.Width, d.Rows)
	return err
}

// ToMarkdown renders the rows as a markdown table with positional column
// headings (1..Width). Null cells render empty.
func (d *Document) ToMarkdown() string {
	if d.IsEmpty() || d.Width == 0 {
		return ""
	}
	header := make([]string, d.Width)
	for i := range header {
		header[i] = fmt.Sprintf("%d", i+1)
	}
	body := make([][]string, len(d.Rows))
	for i, r := range d.Rows {
		body[i] = r.Strings()
	}
	return markdownTable(header, body)
}

// markdownTable writes a pipe table. Newlines inside cells become spaces.
func markdownTable(header []string, body [][]string) string {
	var sb strings.Builder

	writeRow := func(cells []string) {
		for _, c := range cells {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(c, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(header)
	for range header {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, r := range body {
		writeRow(r)
	}

	return sb.String()
}
