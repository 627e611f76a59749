package xlsx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildXLSX creates a single-sheet XLSX workbook in memory for testing.
func buildXLSX(t *testing.T, sheetName, sheetXML string, sharedStrings []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeZipFile(t, zw, "[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`)

	writeZipFile(t, zw, "xl/_rels/workbook.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`)

	writeZipFile(t, zw, "xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="`+sheetName+`" sheetId="1" r:id="rId1"/></sheets>
</workbook>`)

	var ss strings.Builder
	ss.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, s := range sharedStrings {
		ss.WriteString("<si><t>" + s + "</t></si>")
	}
	ss.WriteString("</sst>")
	writeZipFile(t, zw, "xl/sharedStrings.xml", ss.String())

	writeZipFile(t, zw, "xl/worksheets/sheet1.xml", sheetXML)

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

const invoiceSheet = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
  <row r="1">
    <c r="A1" t="s"><v>0</v></c>
  </row>
  <row r="3">
    <c r="A3" t="s"><v>1</v></c>
    <c r="B3" t="s"><v>2</v></c>
    <c r="C3" t="s"><v>3</v></c>
  </row>
  <row r="4">
    <c r="A4" t="inlineStr"><is><t>Widget</t></is></c>
    <c r="B4"><v>2</v></c>
    <c r="C4" t="b"><v>1</v></c>
  </row>
</sheetData>
<mergeCells count="1"><mergeCell ref="A1:C1"/></mergeCells>
</worksheet>`

func openInvoice(t *testing.T) *Reader {
	t.Helper()
	data := buildXLSX(t, "Invoice", invoiceSheet, []string{"GEM EORI GB123", "Item", "Qty", "Paid"})
	r, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	return r
}

func TestOpenReader(t *testing.T) {
	r := openInvoice(t)
	defer r.Close()

	if r.SheetCount() != 1 {
		t.Errorf("SheetCount() = %d, want 1", r.SheetCount())
	}
	if names := r.SheetNames(); len(names) != 1 || names[0] != "Invoice" {
		t.Errorf("SheetNames() = %v", names)
	}

	sheet, err := r.SheetByName("Invoice")
	if err != nil {
		t.Fatalf("SheetByName() failed: %v", err)
	}
	if len(sheet.Rows) != 4 || sheet.Width != 3 {
		t.Fatalf("sheet is %dx%d, want 4x3", len(sheet.Rows), sheet.Width)
	}

	tests := []struct {
		ref      string
		value    string
		cellType CellType
	}{
		{"A1", "GEM EORI GB123", CellTypeString},
		{"B1", "", CellTypeEmpty}, // merged into A1
		{"A4", "Widget", CellTypeString},
		{"B4", "2", CellTypeNumber},
		{"C4", "TRUE", CellTypeBoolean},
		{"B2", "", CellTypeEmpty},
	}
	for _, tt := range tests {
		col, row, err := ParseCellRef(tt.ref)
		if err != nil {
			t.Fatal(err)
		}
		c := sheet.Rows[row][col]
		if c.Value != tt.value || c.Type != tt.cellType {
			t.Errorf("%s = %+v, want %q (%v)", tt.ref, c, tt.value, tt.cellType)
		}
	}
}

func TestRichTextSharedString(t *testing.T) {
	sheetXML := `<worksheet><sheetData><row r="1"><c r="B1" t="s"><v>0</v></c><c r="C1" t="s"><v>7</v></c></row></sheetData></worksheet>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, "[Content_Types].xml", "<Types/>")
	writeZipFile(t, zw, "xl/workbook.xml", `<workbook><sheets><sheet name="S" sheetId="1"/></sheets></workbook>`)
	writeZipFile(t, zw, "xl/sharedStrings.xml", `<sst><si><r><t>Grand </t></r><r><t>Total:</t></r></si></sst>`)
	writeZipFile(t, zw, "xl/worksheets/sheet1.xml", sheetXML)
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	sheet, _ := r.Sheet(0)
	if got := sheet.Rows[0][1].Value; got != "Grand Total:" {
		t.Errorf("runs not joined: %q", got)
	}
	if !sheet.Rows[0][2].IsEmpty() {
		t.Errorf("out-of-range shared index = %+v, want empty", sheet.Rows[0][2])
	}
	if !sheet.Rows[0][0].IsEmpty() {
		t.Errorf("unreferenced column = %+v, want empty", sheet.Rows[0][0])
	}
}

func TestReaderDocument(t *testing.T) {
	r := openInvoice(t)
	defer r.Close()

	doc, err := r.Document(0)
	if err != nil {
		t.Fatalf("Document() failed: %v", err)
	}

	// The blank second row is dropped.
	if doc.Width != 3 || doc.RowCount() != 3 {
		t.Fatalf("document is %dx%d, want 3x3", doc.RowCount(), doc.Width)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if doc.Cell(0, 0).String() != "GEM EORI GB123" || !doc.Cell(0, 1).IsNull() {
		t.Errorf("row 0 = %+v", doc.Rows[0])
	}
	if doc.Cell(1, 2).String() != "Paid" {
		t.Errorf("row 1 = %+v", doc.Rows[1])
	}

	if _, err := r.Document(3); err == nil {
		t.Error("Document(3) expected error")
	}
}

func TestOpenFile(t *testing.T) {
	data := buildXLSX(t, "Sheet1", invoiceSheet, []string{"a", "b", "c", "d"})
	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open("/nonexistent/file.xlsx"); err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpenReader_InvalidZip(t *testing.T) {
	data := []byte("not a zip file")
	if _, err := OpenReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("OpenReader() expected error for invalid zip")
	}
}

func TestOpenReader_MissingWorkbook(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, "[Content_Types].xml", "<Types/>")
	zw.Close()

	_, err := OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err == nil || !strings.Contains(err.Error(), "workbook") {
		t.Errorf("expected missing workbook error, got %v", err)
	}
}

func TestSheetOutOfRange(t *testing.T) {
	r := openInvoice(t)
	if _, err := r.Sheet(-1); err == nil {
		t.Error("Sheet(-1) expected error")
	}
	if _, err := r.SheetByName("nope"); err == nil {
		t.Error("SheetByName(nope) expected error")
	}
}
