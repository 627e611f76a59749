package normalize

import (
	"testing"

	"github.com/tsawler/manifest/model"
)

func TestCurrencyString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading marker", "£120.50", "120.50"},
		{"marker with spaces", " £ 120.50 ", "120.50"},
		{"trailing marker", "99 £", "99"},
		{"only marker", "£", ""},
		{"no marker keeps spaces", "  12.00 ", "  12.00 "},
		{"empty", "", ""},
		{"two markers", "£1 / £2", "1 / 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Default.String(tt.in); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCurrencyIdempotent(t *testing.T) {
	inputs := []string{"£120.50", " £ 7 ", "plain", "", "£", "  x  "}
	for _, in := range inputs {
		once := Default.String(in)
		twice := Default.String(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCurrencyCell(t *testing.T) {
	if got := Default.Cell(model.Null); !got.IsNull() {
		t.Errorf("null cell became %+v", got)
	}
	if got := Default.Cell(model.Text("£5")); got != model.Text("5") {
		t.Errorf("Cell(£5) = %+v", got)
	}
}

func TestCurrencyCustomMarkers(t *testing.T) {
	c := Currency{Markers: []string{"€", "EUR", ""}}
	if got := c.String("EUR 10 €"); got != "10" {
		t.Errorf("String() = %q, want %q", got, "10")
	}
	if got := c.String("£10"); got != "£10" {
		t.Errorf("pound should be untouched, got %q", got)
	}
}

func TestCurrencyRow(t *testing.T) {
	row := model.Row{model.Text("£1"), model.Null, model.Text("a")}
	got := Default.Row(row)
	want := model.Row{model.Text("1"), model.Null, model.Text("a")}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if row[0] != model.Text("£1") {
		t.Error("input row was modified")
	}
}
