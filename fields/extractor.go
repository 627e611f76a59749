// Package fields is the library of labeled-field extractors applied to the
// form-like region of a document.
//
// Every extractor is stateless and reads the region without modifying it.
// Extractors never share state, so the order in which they run does not
// change what they find; a Library only fixes the order results are listed.
package fields

import (
	"regexp"
	"strings"

	"github.com/tsawler/manifest/model"
	"github.com/tsawler/manifest/normalize"
)

// Extractor harvests field records from a region.
type Extractor interface {
	// Name is the registry name of the extractor
	Name() string

	// Labels lists the labels the extractor can emit
	Labels() []model.Label

	// Extract scans region and returns what it found, in scan order
	Extract(region *model.Document) []model.FieldRecord
}

// Config holds extractor parameters shared by the library.
type Config struct {
	// Whole word that identifies the consigner's name/address cell
	ConsignerKeyword string

	// Prefix in front of "EORI" that marks the consigner's number
	EORIPrefix string

	// Normalizer for monetary values
	Currency normalize.Currency
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		ConsignerKeyword: "Hoyland",
		EORIPrefix:       "GEM",
		Currency:         normalize.Default,
	}
}

// ParseFunc turns a regular expression submatch into a value. Returning false
// drops the match.
type ParseFunc func(match []string) (string, bool)

// Pattern is a cell-level extractor: every present cell whose text matches Re
// yields one record, scanning the region row by row.
type Pattern struct {
	name  string
	label model.Label
	re    *regexp.Regexp
	parse ParseFunc
}

// NewPattern returns a cell-level extractor. A nil parse returns the first
// capture group.
func NewPattern(name string, label model.Label, re *regexp.Regexp, parse ParseFunc) *Pattern {
	if parse == nil {
		parse = firstGroup
	}
	return &Pattern{name: name, label: label, re: re, parse: parse}
}

func (p *Pattern) Name() string          { return p.name }
func (p *Pattern) Labels() []model.Label { return []model.Label{p.label} }
func (p *Pattern) Locate(text string) (string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return p.parse(m)
}

// Extract implements Extractor.
func (p *Pattern) Extract(region *model.Document) []model.FieldRecord {
	var out []model.FieldRecord
	eachCell(region, func(row, col int, text string) {
		if v, ok := p.Locate(text); ok {
			out = append(out, model.FieldRecord{Label: p.label, Value: v, Row: row, Col: col})
		}
	})
	return out
}

func firstGroup(m []string) (string, bool) {
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// eachCell calls fn for every present cell in row-major order.
func eachCell(region *model.Document, fn func(row, col int, text string)) {
	if region == nil {
		return
	}
	for i, row := range region.Rows {
		for j, c := range row {
			if c.Valid {
				fn(i, j, c.Text)
			}
		}
	}
}

// EORI captures the token after "<prefix> EORI".
func EORI(prefix string) *Pattern {
	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + ` EORI\s+(\S+)`)
	return NewPattern(NameConsignerEORI, model.ConsignerEORI, re, nil)
}

var vatPattern = regexp.MustCompile(`Vat No:\s+(\d+(\s\d+)*)`)

// VAT captures a possibly space-grouped number after "Vat No:". Each
// separator is rewritten to a single ASCII space.
func VAT() *Pattern {
	return NewPattern(NameVATNumber, model.VATNumber, vatPattern, func(m []string) (string, bool) {
		return strings.Join(strings.Fields(m[1]), " "), true
	})
}

var originPattern = regexp.MustCompile(`Origin\s+(\S+)(.*)`)

// CountryOfOrigin returns the text after the token that follows "Origin".
// Anything mentioning China is reported as CN.
func CountryOfOrigin() *Pattern {
	return NewPattern(NameCountryOfOrigin, model.CountryOfOrigin, originPattern, func(m []string) (string, bool) {
		rest := strings.TrimSpace(m[2])
		if rest == "" {
			return "", false
		}
		if strings.Contains(rest, "China") {
			return "CN", true
		}
		return rest, true
	})
}

var grossWeightPattern = regexp.MustCompile(`Gross Weight\s+(\S+)`)

// GrossWeight captures the token after "Gross Weight".
func GrossWeight() *Pattern {
	return NewPattern(NameGrossWeight, model.GrossWeight, grossWeightPattern, nil)
}

var palletPattern = regexp.MustCompile(`Pallets\s+(\S+)`)

// PalletCount captures the token after "Pallets".
func PalletCount() *Pattern {
	return NewPattern(NamePalletCount, model.PalletCount, palletPattern, nil)
}
