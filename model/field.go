package model

// Label names a recognized scalar field.
type Label string

// Recognized field labels, in presentation order.
const (
	ConsignerName    Label = "ConsignerName"
	ConsignerStreet  Label = "ConsignerStreet"
	ConsignerEORI    Label = "ConsignerEORI"
	VATNumber        Label = "VATNumber"
	ConsigneeName    Label = "ConsigneeName"
	ConsigneeStreet  Label = "ConsigneeStreet"
	ConsigneeCountry Label = "ConsigneeCountry"
	CountryOfOrigin  Label = "CountryOfOrigin"
	GrossWeight      Label = "GrossWeight"
	PalletCount      Label = "PalletCount"
	GrandTotal       Label = "GrandTotal"
	InvoiceNumber    Label = "InvoiceNumber"
)

// Labels returns every recognized label in presentation order.
func Labels() []Label {
	return []Label{
		ConsignerName, ConsignerStreet, ConsignerEORI, VATNumber,
		ConsigneeName, ConsigneeStreet, ConsigneeCountry,
		CountryOfOrigin, GrossWeight, PalletCount, GrandTotal, InvoiceNumber,
	}
}

// FieldRecord is one harvested (label, value) pair. Row and Col locate the
// source cell within the region that was scanned. A value joined from
// several cells points at the first cell that contributed to it.
type FieldRecord struct {
	Label Label  `json:"label"`
	Value string `json:"value"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
}

// FieldGroup is every value harvested for one label.
type FieldGroup struct {
	Label  Label    `json:"label"`
	Values []string `json:"values"`
}

// FieldSet is an ordered collection of field records.
type FieldSet struct {
	Records []FieldRecord
}

// NewFieldSet wraps records without copying.
func NewFieldSet(records []FieldRecord) *FieldSet {
	return &FieldSet{Records: records}
}

// Len returns the number of records.
func (s *FieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Values returns every value for label in harvest order.
func (s *FieldSet) Values(label Label) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, r := range s.Records {
		if r.Label == label {
			out = append(out, r.Value)
		}
	}
	return out
}

// First returns the first value for label.
func (s *FieldSet) First(label Label) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, r := range s.Records {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// Groups returns the values grouped by label. Known labels come first in
// presentation order; any other labels follow in first-seen order.
func (s *FieldSet) Groups() []FieldGroup {
	if s.Len() == 0 {
		return nil
	}

	byLabel := make(map[Label][]string)
	var extra []Label
	known := make(map[Label]bool)
	for _, l := range Labels() {
		known[l] = true
	}
	for _, r := range s.Records {
		if _, seen := byLabel[r.Label]; !seen && !known[r.Label] {
			extra = append(extra, r.Label)
		}
		byLabel[r.Label] = append(byLabel[r.Label], r.Value)
	}

	var groups []FieldGroup
	for _, l := range append(Labels(), extra...) {
		if vals, ok := byLabel[l]; ok {
			groups = append(groups, FieldGroup{Label: l, Values: vals})
		}
	}
	return groups
}
