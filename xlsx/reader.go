// Package xlsx loads the worksheets of an XLSX workbook into Documents.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/manifest/model"
)

// Reader holds the parsed worksheets of a workbook.
type Reader struct {
	files  map[string]*zip.File
	closer io.Closer
	shared []string
	sheets []*Sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader parses an XLSX workbook held in ra.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr.File)
}

func newReader(files []*zip.File) (*Reader, error) {
	r := &Reader{files: make(map[string]*zip.File, len(files))}
	for _, f := range files {
		r.files[f.Name] = f
	}

	for _, name := range []string{"[Content_Types].xml", "xl/workbook.xml"} {
		if r.files[name] == nil {
			return nil, fmt.Errorf("missing required file: %s", name)
		}
	}

	var wb xmlWorkbook
	if err := r.decode("xl/workbook.xml", &wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}

	targets := make(map[string]string)
	var rels xmlRelationships
	if err := r.decode("xl/_rels/workbook.xml.rels", &rels); err == nil {
		for _, rel := range rels.Rels {
			targets[rel.ID] = rel.Target
		}
	}

	// the shared string table is absent from workbooks with only numbers
	var sst xmlSharedStrings
	if err := r.decode("xl/sharedStrings.xml", &sst); err == nil {
		r.shared = make([]string, len(sst.Items))
		for i, si := range sst.Items {
			if si.Text != "" || len(si.Runs) == 0 {
				r.shared[i] = si.Text
				continue
			}
			var sb strings.Builder
			for _, run := range si.Runs {
				sb.WriteString(run.Text)
			}
			r.shared[i] = sb.String()
		}
	}

	for i, ref := range wb.Sheets {
		target := targets[ref.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		target = "xl/" + strings.TrimPrefix(strings.TrimPrefix(target, "/"), "xl/")

		var ws xmlWorksheet
		if err := r.decode(target, &ws); err != nil {
			continue
		}
		r.sheets = append(r.sheets, r.buildSheet(&ws, ref.Name, i))
	}
	if len(r.sheets) == 0 {
		return nil, fmt.Errorf("no worksheets found")
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// decode unmarshals the archive member name into v.
func (r *Reader) decode(name string, v any) error {
	f := r.files[name]
	if f == nil {
		return fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

// buildSheet lays the stored cells out on a dense grid as wide as the
// rightmost referenced column.
func (r *Reader) buildSheet(ws *xmlWorksheet, name string, index int) *Sheet {
	sheet := &Sheet{Name: name, Index: index}

	height := 0
	for _, row := range ws.Rows {
		height = max(height, row.Num)
		for _, c := range row.Cells {
			if col, _, err := ParseCellRef(c.Ref); err == nil {
				sheet.Width = max(sheet.Width, col+1)
			}
		}
	}

	sheet.Rows = make([][]Cell, height)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, sheet.Width)
	}
	for _, row := range ws.Rows {
		if row.Num < 1 {
			continue
		}
		for _, c := range row.Cells {
			col, _, err := ParseCellRef(c.Ref)
			if err != nil {
				continue
			}
			sheet.Rows[row.Num-1][col] = r.resolve(c)
		}
	}
	return sheet
}

// resolve turns a stored cell into its display value.
func (r *Reader) resolve(c xmlCell) Cell {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(c.Value)
		if err != nil || idx < 0 || idx >= len(r.shared) {
			return Cell{}
		}
		return Cell{Value: r.shared[idx], Type: CellTypeString}
	case "b":
		if c.Value == "1" {
			return Cell{Value: "TRUE", Type: CellTypeBoolean}
		}
		return Cell{Value: "FALSE", Type: CellTypeBoolean}
	case "e":
		return Cell{Value: c.Value, Type: CellTypeError}
	case "str":
		return Cell{Value: c.Value, Type: CellTypeString}
	case "inlineStr":
		if c.Inline == nil {
			return Cell{}
		}
		return Cell{Value: c.Inline.Text, Type: CellTypeString}
	}
	if c.Value == "" {
		return Cell{}
	}
	return Cell{Value: c.Value, Type: CellTypeNumber}
}

// SheetCount returns the number of sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet at the given index (0-indexed).
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// Document converts the sheet at index to a Document. Rows without any
// value are dropped, the same way blank lines are skipped in delimited
// exports; empty cells become null.
func (r *Reader) Document(index int) (*model.Document, error) {
	sheet, err := r.Sheet(index)
	if err != nil {
		return nil, err
	}
	return sheet.Document(), nil
}
