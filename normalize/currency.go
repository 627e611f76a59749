// Package normalize cleans cell values before they are presented.
package normalize

import (
	"strings"

	"github.com/tsawler/manifest/model"
)

// DefaultMarkers are the currency markers stripped by Default.
var DefaultMarkers = []string{"£"}

// Default strips the pound sign.
var Default = Currency{Markers: DefaultMarkers}

// Currency strips currency markers from text cells.
type Currency struct {
	Markers []string
}

// String removes every marker from s and trims the result, but only when s
// contains at least one marker. Text without a marker is returned as-is.
func (c Currency) String(s string) string {
	found := false
	for _, m := range c.Markers {
		if m != "" && strings.Contains(s, m) {
			found = true
			s = strings.ReplaceAll(s, m, "")
		}
	}
	if !found {
		return s
	}
	return strings.TrimSpace(s)
}

// Cell applies String to a present cell. Null cells pass through.
func (c Currency) Cell(cell model.Cell) model.Cell {
	if cell.IsNull() {
		return cell
	}
	return model.Text(c.String(cell.Text))
}

// Row returns a normalized copy of row.
func (c Currency) Row(row model.Row) model.Row {
	out := make(model.Row, len(row))
	for i, cell := range row {
		out[i] = c.Cell(cell)
	}
	return out
}
