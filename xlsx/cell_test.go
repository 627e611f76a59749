package xlsx

import "testing"

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		ref     string
		wantCol int
		wantRow int
		wantErr bool
	}{
		{"A1", 0, 0, false},
		{"C4", 2, 3, false},
		{"Z10", 25, 9, false},
		{"AA1", 26, 0, false},
		{"ab12", 27, 11, false},
		{"XFD1048576", 16383, 1048575, false},
		{"", 0, 0, true},
		{"A", 0, 0, true},
		{"12", 0, 0, true},
		{"A0", 0, 0, true},
		{"A-1", 0, 0, true},
		{"A1B", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			col, row, err := ParseCellRef(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCellRef(%q) = (%d, %d), want error", tt.ref, col, row)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCellRef(%q) error: %v", tt.ref, err)
			}
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("ParseCellRef(%q) = (%d, %d), want (%d, %d)", tt.ref, col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 0},
		{"z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"", -1},
		{"A1", -1},
	}

	for _, tt := range tests {
		if got := ColumnIndex(tt.letters); got != tt.want {
			t.Errorf("ColumnIndex(%q) = %d, want %d", tt.letters, got, tt.want)
		}
	}
}

func TestCellTypeString(t *testing.T) {
	tests := []struct {
		ct   CellType
		want string
	}{
		{CellTypeEmpty, "empty"},
		{CellTypeString, "string"},
		{CellTypeNumber, "number"},
		{CellTypeBoolean, "boolean"},
		{CellTypeError, "error"},
		{CellType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("CellType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestSheetDocumentSkipsBlankRows(t *testing.T) {
	sheet := &Sheet{
		Width: 3,
		Rows: [][]Cell{
			{{Value: "a", Type: CellTypeString}, {}, {Value: "1", Type: CellTypeNumber}},
			{{}, {}, {}},
			{{}, {Value: "b", Type: CellTypeString}, {}},
		},
	}

	doc := sheet.Document()

	if doc.Width != 3 || doc.RowCount() != 2 {
		t.Fatalf("got %dx%d, want 2x3", doc.RowCount(), doc.Width)
	}
	if !doc.Cell(0, 1).IsNull() || doc.Cell(0, 2).String() != "1" {
		t.Errorf("row 0 = %+v", doc.Rows[0])
	}
	if doc.Cell(1, 1).String() != "b" {
		t.Errorf("row 1 = %+v", doc.Rows[1])
	}
}
