package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/manifest/model"
)

// Reader holds the tables parsed from an HTML document.
type Reader struct {
	tables []*ParsedTable
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}
	reader.collectTables(doc)
	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Tables returns the parsed tables in document order.
func (r *Reader) Tables() []*ParsedTable {
	return r.tables
}

// collectTables finds every table element outside site navigation. Nested
// tables are parsed as tables of their own and do not contribute text to the
// outer cell.
func (r *Reader) collectTables(n *html.Node) {
	if isNavigation(n) {
		return
	}
	if n.Type == html.ElementNode && n.Data == "table" {
		r.tables = append(r.tables, parseTable(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.collectTables(c)
	}
}

// parseTable extracts a table from an HTML table element.
func parseTable(tableNode *html.Node) *ParsedTable {
	table := &ParsedTable{}

	// Find thead, tbody, tfoot, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			table.HasHeader = true
			parseTableRows(c, table, true)
		case "tbody", "tfoot":
			parseTableRows(c, table, false)
		case "tr":
			if row := parseTableRow(c, false); len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}

	return table
}

// parseTableRows parses rows within thead, tbody or tfoot.
func parseTableRows(section *html.Node, table *ParsedTable, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			if row := parseTableRow(c, isHeader); len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		}
	}
}

// maxColSpan is the largest colspan HTML allows; larger values are clamped.
const maxColSpan = 1000

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node, isHeader bool) []TableCell {
	var row []TableCell

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		cell := TableCell{
			Text:     getTextContent(c),
			IsHeader: isHeader || c.Data == "th",
			ColSpan:  1,
		}
		for _, attr := range c.Attr {
			if attr.Key == "colspan" {
				if n, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && n > 1 {
					cell.ColSpan = min(n, maxColSpan)
				}
			}
		}
		row = append(row, cell)
	}

	return row
}

// getTextContent extracts the text of a cell with whitespace collapsed.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.Join(strings.Fields(result.String()), " ")
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "table":
			return
		case "br":
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li":
			result.WriteString(" ")
		}
	}
}

// Document concatenates the rows of every table into one Document, in
// document order. A cell with colspan n occupies n columns; the extra
// columns are null. The width is the widest row.
func (r *Reader) Document() (*model.Document, error) {
	width := 0
	for _, t := range r.tables {
		for _, row := range t.Rows {
			if w := rowWidth(row); w > width {
				width = w
			}
		}
	}

	doc := &model.Document{Width: width}
	for _, t := range r.tables {
		for _, cells := range t.Rows {
			row := make(model.Row, width)
			col := 0
			for _, c := range cells {
				if c.Text != "" {
					row[col] = model.Text(c.Text)
				}
				col += c.ColSpan
			}
			doc.Rows = append(doc.Rows, row)
		}
	}
	return doc, nil
}
