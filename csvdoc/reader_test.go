package csvdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/manifest/model"
)

func TestOpenReaderBasic(t *testing.T) {
	in := "Item,Qty,Price\nWidget,2,£1.00\nGrand Total:,,£2.00\n"

	r, err := OpenReader(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	doc, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}

	if doc.Width != 3 || doc.RowCount() != 3 {
		t.Fatalf("got %dx%d, want 3x3", doc.RowCount(), doc.Width)
	}
	if got := doc.Cell(1, 2); got != model.Text("£1.00") {
		t.Errorf("cell(1,2) = %+v", got)
	}
	if got := doc.Cell(2, 1); !got.IsNull() {
		t.Errorf("empty field should be null, got %+v", got)
	}
}

func TestOpenReaderRaggedPadded(t *testing.T) {
	in := "a,b,c,d\nInvoice To:\nx,y\n"

	r, err := OpenReader(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	if !r.Ragged() {
		t.Error("expected ragged input to be reported")
	}
	doc, _ := r.Document()
	if err := doc.Validate(); err != nil {
		t.Errorf("padded document invalid: %v", err)
	}
	if doc.Rows[1].NonNull() != 1 || len(doc.Rows[1]) != 4 {
		t.Errorf("row 1 = %+v", doc.Rows[1])
	}
}

func TestOpenReaderWindows1252(t *testing.T) {
	// 0xA3 is the pound sign in Windows-1252.
	in := []byte("Total,\xa3120.50\n")

	r, err := OpenReader(strings.NewReader(string(in)), Options{Encoding: "windows-1252"})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	doc, _ := r.Document()
	if got := doc.Cell(0, 1).String(); got != "£120.50" {
		t.Errorf("decoded cell = %q, want %q", got, "£120.50")
	}
}

func TestOpenReaderBOMAndSkipHeader(t *testing.T) {
	in := "\ufeffUnnamed: 0,Unnamed: 1\nVat No: 1 2,\n"

	r, err := OpenReader(strings.NewReader(in), Options{SkipHeader: true})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	doc, _ := r.Document()
	if doc.RowCount() != 1 {
		t.Fatalf("RowCount = %d, want 1", doc.RowCount())
	}
	if got := doc.Cell(0, 0).String(); got != "Vat No: 1 2" {
		t.Errorf("cell = %q", got)
	}
}

func TestOpenReaderTabs(t *testing.T) {
	r, err := OpenReader(strings.NewReader("a\tb\n"), Options{Comma: '\t'})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	doc, _ := r.Document()
	if doc.Width != 2 {
		t.Errorf("Width = %d, want 2", doc.Width)
	}
}

func TestUnsupportedEncoding(t *testing.T) {
	if _, err := OpenReader(strings.NewReader("a"), Options{Encoding: "ebcdic"}); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path, Options{})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()
	if r.RowCount() != 1 {
		t.Errorf("RowCount = %d", r.RowCount())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.csv"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmptyInput(t *testing.T) {
	r, err := OpenReader(strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	doc, _ := r.Document()
	if !doc.IsEmpty() {
		t.Errorf("expected empty document, got %+v", doc)
	}
	if r.Ragged() {
		t.Error("empty input reported ragged")
	}
}
