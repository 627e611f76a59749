package tables

import (
	"fmt"
	"strings"

	"github.com/tsawler/manifest/model"
)

// Reconstruct promotes the first row to a header and returns the remaining
// rows as the table body. Null header cells are named UnnamedK (K is the
// 1-based column), duplicate names are suffixed, a PackageType column is
// derived per row and body cells are currency-normalized. It never fails;
// zero rows yield an empty block.
func Reconstruct(rows []model.Row, cfg Config) *model.TableBlock {
	block := &model.TableBlock{}
	if len(rows) == 0 {
		return block
	}

	block.Header = DedupeHeader(HeaderNames(rows[0]))

	body := rows[1:]
	block.Rows = make([]model.Row, len(body))
	block.PackageType = make([]model.Cell, len(body))
	for i, row := range body {
		// Package type is read from the raw text, before normalization.
		block.PackageType[i] = PackageType(block.Header, row, cfg.PackageKeywords)
		block.Rows[i] = cfg.Currency.Row(row)
	}

	return block
}

// HeaderNames returns the header row as names, replacing null cells with
// UnnamedK.
func HeaderNames(row model.Row) []string {
	names := make([]string, len(row))
	for i, c := range row {
		if c.IsNull() {
			names[i] = fmt.Sprintf("Unnamed%d", i+1)
			continue
		}
		names[i] = c.Text
	}
	return names
}

// DedupeHeader makes repeated names unique. The first occurrence keeps its
// name; the n-th occurrence (n >= 2) becomes name_n.
func DedupeHeader(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		seen[name]++
		if n := seen[name]; n > 1 {
			out[i] = fmt.Sprintf("%s_%d", name, n)
			continue
		}
		out[i] = name
	}
	return out
}

// PackageType returns the first keyword, in priority order, that occurs
// anywhere in the row's text. The row's text is every column name followed
// by its present value, so a keyword heading a column marks each row below
// it. It returns Null when no keyword occurs.
func PackageType(header []string, row model.Row, keywords []string) model.Cell {
	text := rowText(header, row)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return model.Text(kw)
		}
	}
	return model.Null
}

// rowText joins the column names and present cells of row with newlines so
// a keyword cannot straddle two of them.
func rowText(header []string, row model.Row) string {
	parts := make([]string, 0, len(header)+len(row))
	parts = append(parts, header...)
	for _, c := range row {
		if c.Valid {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
