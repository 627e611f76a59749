// Package pdfdoc loads the text layer of a PDF export into a Document.
//
// Each text line becomes a row and each horizontally separated run of words
// becomes a cell. Column positions are not aligned across rows, so the
// result is a best-effort grid; no OCR is attempted.
package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/manifest/model"
)

// DefaultCellGap is the horizontal gap, in points, that separates two cells.
const DefaultCellGap = 12.0

// Options controls how text runs are grouped into cells.
type Options struct {
	// Gap in points above which a new cell starts (default DefaultCellGap)
	CellGap float64
}

// run is one positioned piece of text on a line.
type run struct {
	x, w, size float64
	s          string
}

// Reader holds the text lines of a PDF.
type Reader struct {
	lines [][]run
	opts  Options
}

// Open reads a PDF file from disk.
func Open(filename string, opts Options) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	return OpenReader(f, info.Size(), opts)
}

// OpenReader parses the PDF held in ra.
func OpenReader(ra io.ReaderAt, size int64, opts Options) (*Reader, error) {
	if opts.CellGap <= 0 {
		opts.CellGap = DefaultCellGap
	}

	pr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}

	r := &Reader{opts: opts}
	for i := 1; i <= pr.NumPage(); i++ {
		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			line := make([]run, 0, len(row.Content))
			for _, t := range row.Content {
				line = append(line, run{x: t.X, w: t.W, size: t.FontSize, s: t.S})
			}
			r.lines = append(r.lines, line)
		}
	}
	return r, nil
}

// FromBytes parses a PDF held in memory.
func FromBytes(data []byte, opts Options) (*Reader, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)), opts)
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Document returns one row per non-blank text line.
func (r *Reader) Document() (*model.Document, error) {
	var rows [][]string
	for _, line := range r.lines {
		if cells := groupCells(line, r.opts.CellGap); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return model.FromStrings(rows), nil
}

// groupCells orders runs left to right and joins them into cells, starting a
// new cell when the gap to the previous run exceeds cellGap. Runs closer than
// a cell gap but separated by more than a fifth of the font size get a space.
func groupCells(line []run, cellGap float64) []string {
	runs := make([]run, 0, len(line))
	for _, r := range line {
		if strings.TrimSpace(r.s) != "" {
			runs = append(runs, r)
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].x < runs[j].x })

	var cells []string
	var cur strings.Builder
	end := 0.0
	for i, r := range runs {
		gap := r.x - end
		switch {
		case i == 0:
		case gap > cellGap:
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		case gap > r.size/5:
			cur.WriteByte(' ')
		}
		cur.WriteString(r.s)
		if e := r.x + r.w; e > end || i == 0 {
			end = e
		}
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}
