package manifest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/tsawler/manifest/fields"
	"github.com/tsawler/manifest/model"
)

func TestExtractFilesKeepsOrder(t *testing.T) {
	var files []string
	for i := 0; i < 6; i++ {
		body := fmt.Sprintf("Item,Qty,Price\nWidget,%d,£1.00\nInvoice Number:,INV-%d,\n", i+1, i)
		files = append(files, writeFile(t, fmt.Sprintf("inv%d.csv", i), body))
	}
	missing := filepath.Join(t.TempDir(), "missing.csv")
	files = append(files, missing)

	results := ExtractFiles(context.Background(), Open("").Preset(fields.PresetInvoice), 2, files...)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i := 0; i < 6; i++ {
		r := results[i]
		if r.Filename != files[i] {
			t.Errorf("result %d is for %s, want %s", i, r.Filename, files[i])
		}
		if r.Err != nil {
			t.Errorf("result %d error: %v", i, r.Err)
			continue
		}
		want := fmt.Sprintf("INV-%d", i)
		if got, _ := r.Result.Fields.First(model.InvoiceNumber); got != want {
			t.Errorf("result %d InvoiceNumber = %q, want %q", i, got, want)
		}
	}
	if results[6].Err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractFilesCanceled(t *testing.T) {
	path := writeFile(t, "inv.csv", "Item,Qty\nWidget,1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ExtractFiles(ctx, nil, 1, path, path)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
		}
	}
}

func TestExtractFilesSharesConfigError(t *testing.T) {
	path := writeFile(t, "inv.csv", "Item,Qty\nWidget,1\n")

	results := ExtractFiles(context.Background(), Open("").Threshold(200), 0, path)
	if results[0].Err == nil {
		t.Error("expected configuration error to reach every file")
	}
}
