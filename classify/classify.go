// Package classify splits a document into a dense tabular region and a sparse
// form-like region by per-row cell density.
package classify

import (
	"fmt"

	"github.com/tsawler/manifest/model"
)

// DefaultThreshold is the density (percent of non-null cells) a row must
// exceed to be considered tabular.
const DefaultThreshold = 70.0

// Label is the classification assigned to a row.
type Label int

const (
	// FormLike rows hold scattered label/value text.
	FormLike Label = iota
	// Tabular rows are dense enough to belong to the line-item table.
	Tabular
)

// String returns the string representation of the label.
func (l Label) String() string {
	switch l {
	case Tabular:
		return "Tabular"
	case FormLike:
		return "FormLike"
	default:
		return "Unknown"
	}
}

// Config holds classifier configuration.
type Config struct {
	// Threshold is compared with a strict greater-than.
	Threshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold}
}

// Validate rejects thresholds outside [0, 100].
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %v outside [0, 100]", c.Threshold)
	}
	return nil
}

// Density returns the percentage of non-null cells in row relative to width.
// A zero width yields 0.
func Density(row model.Row, width int) float64 {
	if width <= 0 {
		return 0
	}
	return float64(row.NonNull()) / float64(width) * 100
}

// Partition is the result of classifying every row of a document once.
// Tabular and FormLike keep the source width and original row order;
// TabularIndex and FormIndex map their rows back to source row numbers.
type Partition struct {
	Labels       []Label
	Tabular      *model.Document
	FormLike     *model.Document
	TabularIndex []int
	FormIndex    []int
}

// Split labels every row of doc and partitions the rows accordingly.
// A nil document is treated as empty.
func Split(doc *model.Document, cfg Config) *Partition {
	width := 0
	if doc != nil {
		width = doc.Width
	}

	p := &Partition{
		Tabular:  &model.Document{Width: width},
		FormLike: &model.Document{Width: width},
	}
	if doc == nil {
		return p
	}

	p.Labels = make([]Label, len(doc.Rows))
	for i, row := range doc.Rows {
		if Density(row, width) > cfg.Threshold {
			p.Labels[i] = Tabular
			p.Tabular.Rows = append(p.Tabular.Rows, row)
			p.TabularIndex = append(p.TabularIndex, i)
			continue
		}
		p.Labels[i] = FormLike
		p.FormLike.Rows = append(p.FormLike.Rows, row)
		p.FormIndex = append(p.FormIndex, i)
	}
	return p
}

// Count returns how many rows carry label.
func (p *Partition) Count(label Label) int {
	n := 0
	for _, l := range p.Labels {
		if l == label {
			n++
		}
	}
	return n
}
