// Package manifest provides a fluent API for pulling line items and shipping
// fields out of invoice exports (CSV, TSV, XLSX, HTML and PDF).
//
// A document is split into two regions. Dense rows form the line-item table;
// sparse rows form a header/footer region from which named fields such as the
// consigner, VAT number and grand total are harvested.
//
// Basic usage:
//
//	res, warnings, err := manifest.Open("invoice.csv").Result()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", manifest.FormatWarnings(warnings))
//	}
//	fmt.Println(res.Table.ToMarkdown())
//
// With options:
//
//	fs, _, err := manifest.Open("invoice.xlsx").
//	    Sheet(1).
//	    Threshold(60).
//	    Preset("invoice").
//	    FieldSet()
//
// The lower-level classify, tables and fields packages can be used directly
// on a model.Document.
package manifest

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/tsawler/manifest/fields"
	"github.com/tsawler/manifest/format"
	"github.com/tsawler/manifest/model"
)

var (
	// ErrNoSource is returned when an Extractor has nothing to read.
	ErrNoSource = errors.New("no input source")

	// ErrUnknownField is returned for an extractor or preset name that is not
	// registered.
	ErrUnknownField = fields.ErrUnknown
)

// Open returns an Extractor that reads filename. The format is taken from
// the extension, or sniffed from the content when the extension is unknown.
//
// Example:
//
//	res, warnings, err := manifest.Open("invoice.csv").Result()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
		logger:   zap.NewNop(),
	}
}

// FromReader returns an Extractor that reads all of r on first use and
// parses it as f. The reader is consumed by the first terminal operation.
// Passing format.Unknown sniffs the format from the content.
//
// Example:
//
//	res, _, err := manifest.FromReader(req.Body, format.CSV).Result()
func FromReader(r io.Reader, f format.Format) *Extractor {
	return &Extractor{
		source:  r,
		format:  f,
		options: defaultOptions(),
		logger:  zap.NewNop(),
	}
}

// FromDocument returns an Extractor over an already loaded Document.
// Loader options such as Sheet and Encoding have no effect.
func FromDocument(doc *model.Document) *Extractor {
	e := &Extractor{
		doc:     doc,
		options: defaultOptions(),
		logger:  zap.NewNop(),
	}
	if doc == nil {
		e.err = ErrNoSource
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is a helper that wraps a call to a terminal operation such as
// Result() or Table() and panics if the error is non-nil. Warnings are
// discarded.
//
// Example:
//
//	res := manifest.MustResult(manifest.Open("invoice.csv").Result())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
