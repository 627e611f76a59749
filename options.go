package manifest

import (
	"github.com/tsawler/manifest/classify"
	"github.com/tsawler/manifest/fields"
	"github.com/tsawler/manifest/normalize"
	"github.com/tsawler/manifest/tables"
)

// ExtractOptions holds configuration for one extraction pipeline.
type ExtractOptions struct {
	// Classification
	threshold float64

	// Table reconstruction
	packageKeywords []string
	currencyMarkers []string

	// Field extraction (nil means every registered extractor)
	fieldNames       []string
	consignerKeyword string
	eoriPrefix       string

	// Loading
	sheet      int
	encoding   string
	skipHeader bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	fc := fields.DefaultConfig()
	return ExtractOptions{
		threshold:        classify.DefaultThreshold,
		packageKeywords:  tables.DefaultPackageKeywords,
		currencyMarkers:  normalize.DefaultMarkers,
		consignerKeyword: fc.ConsignerKeyword,
		eoriPrefix:       fc.EORIPrefix,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	n := o
	n.packageKeywords = append([]string(nil), o.packageKeywords...)
	n.currencyMarkers = append([]string(nil), o.currencyMarkers...)
	if o.fieldNames != nil {
		n.fieldNames = append([]string(nil), o.fieldNames...)
	}
	return n
}

func (o ExtractOptions) currency() normalize.Currency {
	return normalize.Currency{Markers: o.currencyMarkers}
}

func (o ExtractOptions) classifyConfig() classify.Config {
	return classify.Config{Threshold: o.threshold}
}

func (o ExtractOptions) tableConfig() tables.Config {
	return tables.Config{PackageKeywords: o.packageKeywords, Currency: o.currency()}
}

func (o ExtractOptions) library() (*fields.Library, error) {
	return fields.New(fields.Config{
		ConsignerKeyword: o.consignerKeyword,
		EORIPrefix:       o.eoriPrefix,
		Currency:         o.currency(),
	}, o.fieldNames...)
}
