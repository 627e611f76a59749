// Package csvdoc loads delimited text exports (CSV, TSV) into a Document.
package csvdoc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/manifest/model"
)

// Options controls how a delimited file is read.
type Options struct {
	// Comma is the field delimiter (default ',')
	Comma rune

	// Encoding of the input: "utf-8" (default), "windows-1252" or "iso-8859-1"
	Encoding string

	// SkipHeader drops the first record, for exports whose first line is a
	// generated column header rather than document content. It is off by
	// default, so the first line is classified like any other. Readers that
	// treat the first line as column labels, as pandas read_csv does, never
	// classify it; enable SkipHeader to get the same rows
	SkipHeader bool
}

// encodings maps accepted names to decoders.
var encodings = map[string]encoding.Encoding{
	"":             unicode.UTF8,
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
}

// LookupEncoding reports whether name is an accepted encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Reader holds a parsed delimited file.
type Reader struct {
	records [][]string
}

// Open reads a delimited file from disk.
func Open(filename string, opts Options) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, opts)
}

// OpenReader parses delimited text from r.
func OpenReader(r io.Reader, opts Options) (*Reader, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = norm.NFC.Bytes(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing delimited text: %w", err)
	}
	if opts.SkipHeader && len(records) > 0 {
		records = records[1:]
	}

	return &Reader{records: records}, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// RowCount returns the number of records read.
func (r *Reader) RowCount() int {
	return len(r.records)
}

// Ragged reports whether records had differing field counts. Short records
// are padded with null cells by Document.
func (r *Reader) Ragged() bool {
	for _, rec := range r.records {
		if len(rec) != len(r.records[0]) {
			return true
		}
	}
	return false
}

// Document returns the records as a Document. Empty fields become null.
func (r *Reader) Document() (*model.Document, error) {
	return model.FromStrings(r.records), nil
}
