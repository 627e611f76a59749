package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/manifest"
	"github.com/tsawler/manifest/model"
)

func sampleResult(t *testing.T) manifest.FileResult {
	t.Helper()
	doc := model.FromStrings([][]string{
		{"Vat No: 123 456", "", "", ""},
		{"Item", "Qty", "Price", "Note"},
		{"Widget", "2", "£2.50", ""},
		{"Gadget", "3", "£1.00", "fragile"},
		{"Grand Total:", "", "", "£5.50"},
	})
	res, warnings, err := manifest.FromDocument(doc).Result()
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	return manifest.FileResult{Filename: "inv.csv", Result: res, Warnings: warnings}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", Text, false},
		{"JSON", JSON, false},
		{"md", Markdown, false},
		{"csv", CSV, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	failed := manifest.FileResult{Filename: "bad.csv", Err: errors.New("boom")}
	if err := Write(&buf, JSON, []manifest.FileResult{sampleResult(t), failed}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d JSON lines, want 2", len(lines))
	}

	var doc Document
	if err := json.Unmarshal([]byte(lines[0]), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Source != "inv.csv" || len(doc.Rows) != 2 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Rows[0][3] != nil {
		t.Errorf("null cell should encode as null, got %q", *doc.Rows[0][3])
	}
	if doc.Rows[0][2] == nil || *doc.Rows[0][2] != "2.50" {
		t.Errorf("price cell = %v", doc.Rows[0][2])
	}
	if len(doc.Fields) != 2 || doc.Fields[0].Label != model.VATNumber {
		t.Errorf("fields = %+v", doc.Fields)
	}

	var bad Document
	if err := json.Unmarshal([]byte(lines[1]), &bad); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if bad.Error != "boom" {
		t.Errorf("error = %q", bad.Error)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Markdown, []manifest.FileResult{sampleResult(t)}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# inv.csv", "- **VATNumber**: 123 456", "- **GrandTotal**: 5.50", "| Item |", "PackageType"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, CSV, []manifest.FileResult{sampleResult(t)}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Item,Qty,Price,Note,PackageType\n") {
		t.Errorf("csv = %q", buf.String())
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	results := []manifest.FileResult{
		sampleResult(t),
		{Filename: "bad.csv", Err: errors.New("boom")},
	}
	if err := Write(&buf, Text, results); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"inv.csv", "VATNumber", "123 456", "Widget", "Line items (2)", "error: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}
