package fields

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/manifest/model"
)

// ErrUnknown is returned for an extractor or preset name not in the registry.
var ErrUnknown = errors.New("unknown field extractor")

// Registry names of the built-in extractors.
const (
	NameConsigner       = "consigner"
	NameConsignerEORI   = "consigner_eori"
	NameVATNumber       = "vat_number"
	NameConsignee       = "consignee"
	NameCountryOfOrigin = "country_of_origin"
	NameGrossWeight     = "gross_weight"
	NamePalletCount     = "pallet_count"
	NameGrandTotal      = "grand_total"
	NameInvoiceNumber   = "invoice_number"
)

// Preset names.
const (
	PresetFull        = "full"
	PresetConsignment = "consignment"
	PresetInvoice     = "invoice"
)

type factory func(cfg Config) Extractor

// registry lists the built-in extractors in presentation order.
var registry = []struct {
	name  string
	build factory
}{
	{NameConsigner, func(cfg Config) Extractor { return NewConsigner(cfg.ConsignerKeyword) }},
	{NameConsignerEORI, func(cfg Config) Extractor { return EORI(cfg.EORIPrefix) }},
	{NameVATNumber, func(Config) Extractor { return VAT() }},
	{NameConsignee, func(Config) Extractor { return NewConsignee() }},
	{NameCountryOfOrigin, func(Config) Extractor { return CountryOfOrigin() }},
	{NameGrossWeight, func(Config) Extractor { return GrossWeight() }},
	{NamePalletCount, func(Config) Extractor { return PalletCount() }},
	{NameGrandTotal, func(cfg Config) Extractor { return NewGrandTotal(cfg.Currency) }},
	{NameInvoiceNumber, func(Config) Extractor { return NewInvoiceNumber() }},
}

var presets = map[string][]string{
	PresetConsignment: {
		NameConsigner, NameConsignerEORI, NameVATNumber, NameConsignee,
		NameCountryOfOrigin, NameGrossWeight, NamePalletCount, NameGrandTotal,
	},
	PresetInvoice: {
		NameConsigner, NameConsignerEORI, NameVATNumber, NameInvoiceNumber,
		NameGrossWeight, NameCountryOfOrigin,
	},
}

// Names returns every registered extractor name in presentation order.
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.name
	}
	return names
}

// Preset returns the extractor names of a preset.
func Preset(name string) ([]string, error) {
	if name == PresetFull || name == "" {
		return Names(), nil
	}
	names, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, ErrUnknown)
	}
	return append([]string(nil), names...), nil
}

// Presets returns the available preset names.
func Presets() []string {
	out := []string{PresetFull}
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out[1:])
	return out
}

// Library is an ordered set of extractors.
type Library struct {
	extractors []Extractor
}

// New builds a library from registry names. Duplicates are ignored and the
// result is ordered by presentation order, not by argument order. No names
// means every registered extractor.
func New(cfg Config, names ...string) (*Library, error) {
	if len(names) == 0 {
		names = Names()
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if !known(n) {
			return nil, fmt.Errorf("%q: %w", n, ErrUnknown)
		}
		want[n] = true
	}

	lib := &Library{}
	for _, r := range registry {
		if want[r.name] {
			lib.extractors = append(lib.extractors, r.build(cfg))
		}
	}
	return lib, nil
}

// Default returns every built-in extractor with the default configuration.
func Default() *Library {
	lib, _ := New(DefaultConfig())
	return lib
}

func known(name string) bool {
	for _, r := range registry {
		if r.name == name {
			return true
		}
	}
	return false
}

// Extractors returns the extractors in run order.
func (l *Library) Extractors() []Extractor {
	return append([]Extractor(nil), l.extractors...)
}

// Names returns the extractor names in run order.
func (l *Library) Names() []string {
	names := make([]string, len(l.extractors))
	for i, e := range l.extractors {
		names[i] = e.Name()
	}
	return names
}

// Extract runs every extractor over region and concatenates their records in
// library order. region is never modified.
func (l *Library) Extract(region *model.Document) *model.FieldSet {
	var records []model.FieldRecord
	for _, e := range l.extractors {
		records = append(records, e.Extract(region)...)
	}
	return model.NewFieldSet(records)
}
