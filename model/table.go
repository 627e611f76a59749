package model

import "strings"

// PackageTypeColumn is the name of the synthesized column appended to every
// reconstructed table.
const PackageTypeColumn = "PackageType"

// TableBlock is the rectangular line-item table rebuilt from the tabular rows
// of a document. Header holds the deduplicated column names; every body row
// has len(Header) cells. PackageType runs parallel to Rows.
type TableBlock struct {
	Header      []string
	Rows        []Row
	PackageType []Cell
}

// IsEmpty reports whether the block has neither a header nor body rows.
func (t *TableBlock) IsEmpty() bool {
	return t == nil || (len(t.Header) == 0 && len(t.Rows) == 0)
}

// RowCount returns the number of body rows.
func (t *TableBlock) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns the header followed by the PackageType column.
func (t *TableBlock) Columns() []string {
	if t.IsEmpty() {
		return nil
	}
	cols := make([]string, 0, len(t.Header)+1)
	cols = append(cols, t.Header...)
	return append(cols, PackageTypeColumn)
}

// Row returns body row i with its PackageType cell appended.
func (t *TableBlock) Row(i int) Row {
	if t == nil || i < 0 || i >= len(t.Rows) {
		return nil
	}
	row := make(Row, 0, len(t.Rows[i])+1)
	row = append(row, t.Rows[i]...)
	if i < len(t.PackageType) {
		return append(row, t.PackageType[i])
	}
	return append(row, Null)
}

// Record returns body row i keyed by column name.
func (t *TableBlock) Record(i int) map[string]Cell {
	row := t.Row(i)
	if row == nil {
		return nil
	}
	cols := t.Columns()
	rec := make(map[string]Cell, len(cols))
	for j, name := range cols {
		rec[name] = row.At(j)
	}
	return rec
}

// Column returns every body cell of the named column, or nil if no such column.
func (t *TableBlock) Column(name string) []Cell {
	for j, col := range t.Columns() {
		if col != name {
			continue
		}
		out := make([]Cell, t.RowCount())
		for i := range out {
			out[i] = t.Row(i).At(j)
		}
		return out
	}
	return nil
}

// ToMarkdown converts the table to markdown format.
func (t *TableBlock) ToMarkdown() string {
	if t.IsEmpty() {
		return ""
	}
	body := make([][]string, t.RowCount())
	for i := range body {
		body[i] = t.Row(i).Strings()
	}
	return markdownTable(t.Columns(), body)
}

// ToCSV converts the table, header included, to CSV format.
func (t *TableBlock) ToCSV() string {
	if t.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	writeCSVRow(&sb, t.Columns())
	for i := 0; i < t.RowCount(); i++ {
		writeCSVRow(&sb, t.Row(i).Strings())
	}
	return sb.String()
}

func writeCSVRow(sb *strings.Builder, cells []string) {
	for j, text := range cells {
		// Escape quotes and wrap in quotes if necessary
		if strings.ContainsAny(text, ",\"\n") {
			text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
		}
		sb.WriteString(text)
		if j < len(cells)-1 {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n")
}
