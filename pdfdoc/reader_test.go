package pdfdoc

import (
	"reflect"
	"testing"
)

func TestGroupCells(t *testing.T) {
	tests := []struct {
		name string
		line []run
		want []string
	}{
		{
			name: "characters join into a word",
			line: []run{{x: 0, w: 5, size: 10, s: "V"}, {x: 5, w: 5, size: 10, s: "a"}, {x: 10, w: 5, size: 10, s: "t"}},
			want: []string{"Vat"},
		},
		{
			name: "word gap becomes a space",
			line: []run{{x: 0, w: 20, size: 10, s: "Gross"}, {x: 23, w: 30, size: 10, s: "Weight"}},
			want: []string{"Gross Weight"},
		},
		{
			name: "wide gap starts a new cell",
			line: []run{{x: 0, w: 60, size: 10, s: "Grand Total:"}, {x: 200, w: 30, size: 10, s: "£120.50"}},
			want: []string{"Grand Total:", "£120.50"},
		},
		{
			name: "out of order runs are sorted",
			line: []run{{x: 200, w: 30, size: 10, s: "B"}, {x: 0, w: 10, size: 10, s: "A"}},
			want: []string{"A", "B"},
		},
		{
			name: "blank runs ignored",
			line: []run{{x: 0, w: 10, size: 10, s: " "}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := groupCells(tt.line, DefaultCellGap); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("groupCells() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentPadsRows(t *testing.T) {
	r := &Reader{
		opts: Options{CellGap: DefaultCellGap},
		lines: [][]run{
			{{x: 0, w: 50, size: 10, s: "Invoice To:"}},
			{},
			{{x: 0, w: 10, size: 10, s: "A"}, {x: 100, w: 10, size: 10, s: "B"}, {x: 200, w: 10, size: 10, s: "C"}},
		},
	}

	doc, err := r.Document()
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	if doc.Width != 3 || doc.RowCount() != 2 {
		t.Fatalf("document is %dx%d, want 2x3", doc.RowCount(), doc.Width)
	}
	if !doc.Cell(0, 1).IsNull() {
		t.Errorf("short row not padded with null: %+v", doc.Rows[0])
	}
}

func TestFromBytesInvalid(t *testing.T) {
	if _, err := FromBytes([]byte("not a pdf"), Options{}); err == nil {
		t.Error("expected error for invalid PDF")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open("/nonexistent/invoice.pdf", Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
