package fields

import (
	"regexp"
	"strings"

	"github.com/tsawler/manifest/model"
	"github.com/tsawler/manifest/normalize"
)

// noStreet is reported when the consigner cell has no comma.
const noStreet = "N/A"

// Consigner matches any cell containing Keyword as a whole word and splits
// it on the first comma into a name and a street.
type Consigner struct {
	Keyword string
	re      *regexp.Regexp
}

// NewConsigner returns a consigner extractor for keyword.
func NewConsigner(keyword string) *Consigner {
	return &Consigner{
		Keyword: keyword,
		re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`),
	}
}

func (c *Consigner) Name() string { return NameConsigner }

func (c *Consigner) Labels() []model.Label {
	return []model.Label{model.ConsignerName, model.ConsignerStreet}
}

// Extract implements Extractor.
func (c *Consigner) Extract(region *model.Document) []model.FieldRecord {
	var out []model.FieldRecord
	eachCell(region, func(row, col int, text string) {
		if !c.re.MatchString(text) {
			return
		}
		name, street, found := strings.Cut(text, ",")
		street = strings.TrimSpace(street)
		if !found {
			street = noStreet
		}
		out = append(out,
			model.FieldRecord{Label: model.ConsignerName, Value: strings.TrimSpace(name), Row: row, Col: col},
			model.FieldRecord{Label: model.ConsignerStreet, Value: street, Row: row, Col: col},
		)
	})
	return out
}

// Consignee reads the address block under an "Invoice To:" marker in the
// first column: name one row below, street from the next three rows, country
// five rows below. Rows past the end of the region are simply missing.
type Consignee struct {
	Marker string
}

// NewConsignee returns a consignee extractor keyed on "Invoice To:".
func NewConsignee() *Consignee {
	return &Consignee{Marker: "Invoice To:"}
}

func (c *Consignee) Name() string { return NameConsignee }

func (c *Consignee) Labels() []model.Label {
	return []model.Label{model.ConsigneeName, model.ConsigneeStreet, model.ConsigneeCountry}
}

// Extract implements Extractor.
func (c *Consignee) Extract(region *model.Document) []model.FieldRecord {
	if region == nil {
		return nil
	}

	var out []model.FieldRecord
	for i, row := range region.Rows {
		if !strings.Contains(row.At(0).String(), c.Marker) {
			continue
		}

		if name := region.Cell(i+1, 0); name.Valid {
			out = append(out, model.FieldRecord{Label: model.ConsigneeName, Value: name.Text, Row: i + 1, Col: 0})
		}

		var street []string
		first := -1
		for r := i + 2; r <= i+4; r++ {
			if cell := region.Cell(r, 0); cell.Valid {
				if first < 0 {
					first = r
				}
				street = append(street, cell.Text)
			}
		}
		if len(street) > 0 {
			out = append(out, model.FieldRecord{Label: model.ConsigneeStreet, Value: strings.Join(street, " "), Row: first, Col: 0})
		}

		if country := region.Cell(i+5, 0); country.Valid {
			out = append(out, model.FieldRecord{Label: model.ConsigneeCountry, Value: country.Text, Row: i + 5, Col: 0})
		}
	}
	return out
}

// GrandTotal reports, for every cell containing Marker, the last present cell
// to its right in the same row with currency markers removed.
type GrandTotal struct {
	Marker   string
	Currency normalize.Currency
}

// NewGrandTotal returns a grand total extractor keyed on "Grand Total:".
func NewGrandTotal(currency normalize.Currency) *GrandTotal {
	return &GrandTotal{Marker: "Grand Total:", Currency: currency}
}

func (g *GrandTotal) Name() string          { return NameGrandTotal }
func (g *GrandTotal) Labels() []model.Label { return []model.Label{model.GrandTotal} }

// Extract implements Extractor.
func (g *GrandTotal) Extract(region *model.Document) []model.FieldRecord {
	var out []model.FieldRecord
	eachCell(region, func(row, col int, text string) {
		if !strings.Contains(text, g.Marker) {
			return
		}
		cells := region.Rows[row]
		for j := len(cells) - 1; j > col; j-- {
			if !cells[j].Valid {
				continue
			}
			if v := g.Currency.String(cells[j].Text); v != "" {
				out = append(out, model.FieldRecord{Label: model.GrandTotal, Value: v, Row: row, Col: j})
			}
			return
		}
	})
	return out
}

// InvoiceNumber reports, for every cell containing Marker, the first
// non-empty cell among the next Lookahead cells to its right.
type InvoiceNumber struct {
	Marker    string
	Lookahead int
}

// NewInvoiceNumber returns an invoice number extractor keyed on
// "Invoice Number:" looking two cells ahead.
func NewInvoiceNumber() *InvoiceNumber {
	return &InvoiceNumber{Marker: "Invoice Number:", Lookahead: 2}
}

func (n *InvoiceNumber) Name() string          { return NameInvoiceNumber }
func (n *InvoiceNumber) Labels() []model.Label { return []model.Label{model.InvoiceNumber} }

// Extract implements Extractor.
func (n *InvoiceNumber) Extract(region *model.Document) []model.FieldRecord {
	var out []model.FieldRecord
	eachCell(region, func(row, col int, text string) {
		if !strings.Contains(text, n.Marker) {
			return
		}
		cells := region.Rows[row]
		for j := col + 1; j <= col+n.Lookahead && j < len(cells); j++ {
			if cells[j].Valid && cells[j].Text != "" {
				out = append(out, model.FieldRecord{Label: model.InvoiceNumber, Value: cells[j].Text, Row: row, Col: j})
				return
			}
		}
	})
	return out
}
