package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/manifest/classify"
	"github.com/tsawler/manifest/csvdoc"
	"github.com/tsawler/manifest/fields"
	"github.com/tsawler/manifest/format"
	"github.com/tsawler/manifest/htmldoc"
	"github.com/tsawler/manifest/model"
	"github.com/tsawler/manifest/pdfdoc"
	"github.com/tsawler/manifest/tables"
	"github.com/tsawler/manifest/xlsx"
)

// Result is the output of one extraction pipeline.
type Result struct {
	// Source is the filename, or empty for reader and document input
	Source string `json:"source,omitempty"`

	// Format the document was read as (Unknown for FromDocument)
	Format format.Format `json:"-"`

	// Partition holds the per-row labels and both regions
	Partition *classify.Partition `json:"-"`

	// Table is the line-item table reconstructed from the tabular rows
	Table *model.TableBlock `json:"table"`

	// Region is the form-like rows the fields were harvested from
	Region *model.Document `json:"-"`

	// Fields holds the harvested field records in presentation order
	Fields *model.FieldSet `json:"fields"`
}

// Extractor provides a fluent interface for extracting line items and fields
// from an invoice export. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set)
	filename string
	source   io.Reader
	doc      *model.Document

	format format.Format

	// Configuration
	options ExtractOptions
	logger  *zap.Logger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		doc:      e.doc,
		format:   e.format,
		options:  e.options.clone(),
		logger:   e.logger,
		err:      e.err,
	}
}

// fail records err unless an earlier error is already held.
func (e *Extractor) fail(err error) *Extractor {
	if e.err == nil {
		e.err = err
	}
	return e
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Threshold sets the fill percentage a row must exceed to count as a table
// row. It must lie in [0, 100]; the default is 70.
//
// Example:
//
//	res, _, err := manifest.Open("invoice.csv").Threshold(60).Result()
func (e *Extractor) Threshold(percent float64) *Extractor {
	n := e.clone()
	cfg := classify.Config{Threshold: percent}
	if err := cfg.Validate(); err != nil {
		return n.fail(err)
	}
	n.options.threshold = percent
	return n
}

// PackageKeywords replaces the ordered package keyword list used to derive
// the PackageType column. Earlier keywords win.
func (e *Extractor) PackageKeywords(keywords ...string) *Extractor {
	n := e.clone()
	if len(keywords) == 0 {
		return n.fail(fmt.Errorf("package keywords: empty list"))
	}
	n.options.packageKeywords = append([]string(nil), keywords...)
	return n
}

// CurrencyMarkers replaces the symbols stripped from table cells and the
// grand total. The default is the pound sign.
func (e *Extractor) CurrencyMarkers(markers ...string) *Extractor {
	n := e.clone()
	for _, m := range markers {
		if m == "" {
			return n.fail(fmt.Errorf("currency markers: empty marker"))
		}
	}
	n.options.currencyMarkers = append([]string(nil), markers...)
	return n
}

// Fields selects field extractors by registry name, replacing any earlier
// Fields or Preset call. Output order always follows the registry.
//
// Example:
//
//	fs, _, err := manifest.Open("invoice.csv").
//	    Fields("vat_number", "grand_total").
//	    FieldSet()
func (e *Extractor) Fields(names ...string) *Extractor {
	n := e.clone()
	if len(names) == 0 {
		n.options.fieldNames = nil
		return n
	}
	known := make(map[string]bool)
	for _, name := range fields.Names() {
		known[name] = true
	}
	for _, name := range names {
		if !known[name] {
			return n.fail(fmt.Errorf("field %q: %w", name, ErrUnknownField))
		}
	}
	n.options.fieldNames = append([]string(nil), names...)
	return n
}

// Preset selects a named group of field extractors: "full", "consignment"
// or "invoice". It replaces any earlier Fields or Preset call.
func (e *Extractor) Preset(name string) *Extractor {
	n := e.clone()
	names, err := fields.Preset(name)
	if err != nil {
		return n.fail(err)
	}
	n.options.fieldNames = names
	return n
}

// ConsignerKeyword sets the word that identifies the consigner cell
// (default "Hoyland").
func (e *Extractor) ConsignerKeyword(keyword string) *Extractor {
	n := e.clone()
	if keyword == "" {
		return n.fail(fmt.Errorf("consigner keyword: empty"))
	}
	n.options.consignerKeyword = keyword
	return n
}

// EORIPrefix sets the token that precedes "EORI" in the consigner EORI cell
// (default "GEM").
func (e *Extractor) EORIPrefix(prefix string) *Extractor {
	n := e.clone()
	if prefix == "" {
		return n.fail(fmt.Errorf("EORI prefix: empty"))
	}
	n.options.eoriPrefix = prefix
	return n
}

// Sheet selects the 0-based worksheet of an XLSX workbook (default 0).
func (e *Extractor) Sheet(index int) *Extractor {
	n := e.clone()
	if index < 0 {
		return n.fail(fmt.Errorf("sheet index %d: must not be negative", index))
	}
	n.options.sheet = index
	return n
}

// Encoding sets the character encoding of CSV and TSV input: "utf-8"
// (default), "windows-1252" or "iso-8859-1".
func (e *Extractor) Encoding(name string) *Extractor {
	n := e.clone()
	if _, err := csvdoc.LookupEncoding(name); err != nil {
		return n.fail(err)
	}
	n.options.encoding = name
	return n
}

// SkipHeader drops the first line of CSV and TSV input before classification.
// Without it the first line is classified with the rest; enable it to match
// tools that consume the first line as column labels.
func (e *Extractor) SkipHeader() *Extractor {
	n := e.clone()
	n.options.skipHeader = true
	return n
}

// Logger sets the logger used for pipeline diagnostics. A nil logger
// disables logging.
func (e *Extractor) Logger(l *zap.Logger) *Extractor {
	n := e.clone()
	if l == nil {
		l = zap.NewNop()
	}
	n.logger = l
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document loads the input and returns it as a rectangular Document without
// classifying it.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	doc, f, warnings, err := e.load()
	if err != nil {
		return nil, warnings, err
	}
	e.logger.Debug("document loaded",
		zap.String("source", e.filename),
		zap.Stringer("format", f),
		zap.Int("rows", doc.RowCount()),
		zap.Int("width", doc.Width))
	return doc, warnings, nil
}

// Result runs the full pipeline: classify every row once, rebuild the
// line-item table from the tabular rows and harvest fields from the rest.
//
// Example:
//
//	res, warnings, err := manifest.Open("invoice.csv").Result()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	total, _ := res.Fields.First(model.GrandTotal)
func (e *Extractor) Result() (*Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	lib, err := e.options.library()
	if err != nil {
		return nil, nil, err
	}

	doc, f, warnings, err := e.load()
	if err != nil {
		return nil, warnings, err
	}
	if err := doc.Validate(); err != nil {
		return nil, warnings, err
	}

	log := e.logger.With(zap.String("source", e.filename))
	log.Debug("document loaded",
		zap.Stringer("format", f),
		zap.Int("rows", doc.RowCount()),
		zap.Int("width", doc.Width))

	res, more := process(doc, e.options.classifyConfig(), e.options, lib, log)
	res.Source = e.filename
	res.Format = f
	warnings = append(warnings, more...)

	for _, w := range warnings {
		log.Warn("extraction warning", zap.String("code", w.Code), zap.String("detail", w.Message))
	}
	return res, warnings, nil
}

// Table runs the pipeline and returns only the line-item table.
func (e *Extractor) Table() (*model.TableBlock, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, warnings, err
	}
	return res.Table, warnings, nil
}

// FieldSet runs the pipeline and returns only the harvested fields.
func (e *Extractor) FieldSet() (*model.FieldSet, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, warnings, err
	}
	return res.Fields, warnings, nil
}

// process is the synchronous core pipeline over a validated document.
func process(doc *model.Document, cc classify.Config, opts ExtractOptions, lib *fields.Library, log *zap.Logger) (*Result, []Warning) {
	var warnings []Warning

	if doc.IsEmpty() {
		warnings = append(warnings, Warning{Code: WarnEmptyDocument, Message: "document has no rows"})
	}

	part := classify.Split(doc, cc)
	log.Debug("rows classified",
		zap.Int("tabular", len(part.TabularIndex)),
		zap.Int("form_like", len(part.FormIndex)),
		zap.Float64("threshold", cc.Threshold))

	table := tables.Reconstruct(part.Tabular.Rows, opts.tableConfig())
	switch {
	case !doc.IsEmpty() && len(part.TabularIndex) == 0:
		warnings = append(warnings, Warning{
			Code:    WarnNoTabularRows,
			Message: fmt.Sprintf("no row is more than %g%% filled; the whole document is treated as form-like", cc.Threshold),
		})
	case len(part.TabularIndex) == 1:
		warnings = append(warnings, Warning{Code: WarnHeaderOnly, Message: "the table has a header but no line items"})
	}
	log.Debug("table reconstructed",
		zap.Int("columns", len(table.Columns())),
		zap.Int("rows", table.RowCount()))

	fs := lib.Extract(part.FormLike)
	if fs.Len() == 0 && !doc.IsEmpty() {
		warnings = append(warnings, Warning{Code: WarnNoFields, Message: "no field matched the form-like rows"})
	}
	log.Debug("fields extracted",
		zap.Strings("extractors", lib.Names()),
		zap.Int("records", fs.Len()))

	return &Result{
		Partition: part,
		Table:     table,
		Region:    part.FormLike,
		Fields:    fs,
	}, warnings
}

// load reads the source into a Document.
func (e *Extractor) load() (*model.Document, format.Format, []Warning, error) {
	if e.doc != nil {
		return e.doc, e.format, nil, nil
	}

	var data []byte
	switch {
	case e.filename != "":
		b, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, format.Unknown, nil, fmt.Errorf("reading %s: %w", e.filename, err)
		}
		data = b
	case e.source != nil:
		b, err := io.ReadAll(e.source)
		if err != nil {
			return nil, format.Unknown, nil, fmt.Errorf("reading input: %w", err)
		}
		data = b
	default:
		return nil, format.Unknown, nil, ErrNoSource
	}

	f := e.format
	if f == format.Unknown {
		var err error
		f, err = format.Resolve(e.filename, bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, format.Unknown, nil, fmt.Errorf("%s: %w", e.filename, err)
		}
	}

	doc, warnings, err := e.decode(data, f)
	if err != nil {
		return nil, f, warnings, err
	}
	return doc, f, warnings, nil
}

// decode parses data as format f.
func (e *Extractor) decode(data []byte, f format.Format) (*model.Document, []Warning, error) {
	ra := bytes.NewReader(data)
	size := int64(len(data))

	switch f {
	case format.CSV, format.TSV:
		opts := csvdoc.Options{Encoding: e.options.encoding, SkipHeader: e.options.skipHeader}
		if f == format.TSV {
			opts.Comma = '\t'
		}
		r, err := csvdoc.OpenReader(ra, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", f, err)
		}
		defer r.Close()

		var warnings []Warning
		if r.Ragged() {
			warnings = append(warnings, Warning{Code: WarnRaggedRows, Message: "short lines were padded with empty cells"})
		}
		doc, err := r.Document()
		return doc, warnings, err

	case format.XLSX:
		r, err := xlsx.OpenReader(ra, size)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open XLSX: %w", err)
		}
		defer r.Close()
		doc, err := r.Document(e.options.sheet)
		return doc, nil, err

	case format.HTML:
		r, err := htmldoc.OpenReader(ra)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open HTML: %w", err)
		}
		defer r.Close()
		doc, err := r.Document()
		return doc, nil, err

	case format.PDF:
		r, err := pdfdoc.OpenReader(ra, size, pdfdoc.Options{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		defer r.Close()
		doc, err := r.Document()
		return doc, nil, err

	default:
		return nil, nil, fmt.Errorf("%s: %w", f, format.ErrUnsupported)
	}
}
