// Package format provides input format detection for the manifest library.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned when an input is in no format the library reads.
var ErrUnsupported = errors.New("unsupported format")

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CSV indicates comma separated values.
	CSV
	// TSV indicates tab separated values.
	TSV
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
	// HTML indicates an HTML page holding one or more tables.
	HTML
	// PDF indicates a PDF document with a text layer.
	PDF
)

var names = map[Format]string{
	CSV:  "CSV",
	TSV:  "TSV",
	XLSX: "XLSX",
	HTML: "HTML",
	PDF:  "PDF",
}

// String returns the string representation of the format.
func (f Format) String() string {
	if s, ok := names[f]; ok {
		return s
	}
	return "Unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	if f == Unknown {
		return ""
	}
	if _, ok := names[f]; !ok {
		return ""
	}
	return "." + strings.ToLower(f.String())
}

// Parse maps a format name such as "csv" or "XLSX" to a Format.
func Parse(name string) (Format, error) {
	for f, s := range names {
		if strings.EqualFold(s, strings.TrimPrefix(name, ".")) {
			return f, nil
		}
	}
	return Unknown, ErrUnsupported
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return CSV
	case ".tsv", ".tab":
		return TSV
	case ".xlsx":
		return XLSX
	case ".html", ".htm":
		return HTML
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// Plain text formats have no signature, so CSV and TSV are never returned.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		// Any ZIP container; DetectFromReader looks inside.
		return Unknown
	case detectHTMLMagic(data):
		return HTML
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}
	head := strings.ToUpper(string(data[:min(512, len(data))]))
	switch {
	case strings.HasPrefix(head, "<!DOCTYPE HTML"), strings.HasPrefix(head, "<HTML"), strings.HasPrefix(head, "<TABLE"):
		return true
	case strings.HasPrefix(head, "<?XML") && strings.Contains(head, "<HTML"):
		return true
	}
	return false
}

// DetectFromReader inspects the content to determine format. ZIP archives
// are opened to tell workbooks from other containers.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, []byte("PK\x03\x04")) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat reports XLSX when the archive carries an xl/ part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}
	return Unknown, nil
}

// Resolve picks a format for filename, preferring the extension and falling
// back to the content. It returns ErrUnsupported when neither identifies one.
func Resolve(filename string, r io.ReaderAt, size int64) (Format, error) {
	if f := Detect(filename); f != Unknown {
		return f, nil
	}
	if r != nil {
		f, err := DetectFromReader(r, size)
		if err != nil {
			return Unknown, err
		}
		if f != Unknown {
			return f, nil
		}
	}
	return Unknown, ErrUnsupported
}
