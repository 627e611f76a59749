// Package report renders extraction results for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tsawler/manifest"
	"github.com/tsawler/manifest/model"
)

// Format is an output format.
type Format string

// Output formats.
const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
	CSV      Format = "csv"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case Text, JSON, Markdown, CSV:
		return f, nil
	case "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("output format %q: want text, json, markdown or csv", name)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(18)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Write renders every file result to w in format f. JSON output is one
// object per line.
func Write(w io.Writer, f Format, results []manifest.FileResult) error {
	for i, fr := range results {
		var err error
		switch f {
		case JSON:
			err = writeJSON(w, fr)
		case Markdown:
			err = writeMarkdown(w, fr)
		case CSV:
			err = writeCSV(w, fr)
		default:
			if i > 0 {
				fmt.Fprintln(w)
			}
			err = writeText(w, fr)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", fr.Filename, err)
		}
	}
	return nil
}

// Document is the JSON shape of one file result.
type Document struct {
	Source       string             `json:"source"`
	Format       string             `json:"format,omitempty"`
	Error        string             `json:"error,omitempty"`
	Warnings     []manifest.Warning `json:"warnings,omitempty"`
	Columns      []string           `json:"columns,omitempty"`
	Rows         [][]*string        `json:"rows,omitempty"`
	Fields       []model.FieldGroup `json:"fields,omitempty"`
	FormLikeRows int                `json:"form_like_rows"`
}

// NewDocument converts a file result to its JSON shape. Null cells become
// JSON null.
func NewDocument(fr manifest.FileResult) Document {
	doc := Document{Source: fr.Filename, Warnings: fr.Warnings}
	if fr.Err != nil {
		doc.Error = fr.Err.Error()
		return doc
	}
	res := fr.Result
	doc.Format = res.Format.String()
	doc.Columns = res.Table.Columns()
	for i := 0; i < res.Table.RowCount(); i++ {
		row := res.Table.Row(i)
		out := make([]*string, len(row))
		for j, c := range row {
			if c.Valid {
				text := c.Text
				out[j] = &text
			}
		}
		doc.Rows = append(doc.Rows, out)
	}
	doc.Fields = res.Fields.Groups()
	doc.FormLikeRows = res.Region.RowCount()
	return doc
}

func writeJSON(w io.Writer, fr manifest.FileResult) error {
	return json.NewEncoder(w).Encode(NewDocument(fr))
}

func writeMarkdown(w io.Writer, fr manifest.FileResult) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", fr.Filename)
	if fr.Err != nil {
		fmt.Fprintf(&sb, "**Error:** %v\n\n", fr.Err)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString("## Fields\n\n")
	groups := fr.Result.Fields.Groups()
	if len(groups) == 0 {
		sb.WriteString("_none_\n")
	}
	for _, g := range groups {
		fmt.Fprintf(&sb, "- **%s**: %s\n", g.Label, strings.Join(g.Values, "; "))
	}

	sb.WriteString("\n## Line items\n\n")
	if md := fr.Result.Table.ToMarkdown(); md != "" {
		sb.WriteString(md)
	} else {
		sb.WriteString("_none_\n")
	}

	if len(fr.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, warn := range fr.Warnings {
			fmt.Fprintf(&sb, "- `%s` %s\n", warn.Code, warn.Message)
		}
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCSV(w io.Writer, fr manifest.FileResult) error {
	if fr.Err != nil {
		return fr.Err
	}
	_, err := io.WriteString(w, fr.Result.Table.ToCSV())
	return err
}

func writeText(w io.Writer, fr manifest.FileResult) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fr.Filename))
	sb.WriteString("\n")

	if fr.Err != nil {
		sb.WriteString(errorStyle.Render("error: " + fr.Err.Error()))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString(sectionStyle.Render("Fields"))
	sb.WriteString("\n")
	for _, g := range fr.Result.Fields.Groups() {
		for _, v := range g.Values {
			sb.WriteString(labelStyle.Render(string(g.Label)))
			sb.WriteString(v)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(sectionStyle.Render(fmt.Sprintf("Line items (%d)", fr.Result.Table.RowCount())))
	sb.WriteString("\n")
	if !fr.Result.Table.IsEmpty() {
		sb.WriteString(renderTable(fr.Result.Table))
		sb.WriteString("\n")
	}

	for _, warn := range fr.Warnings {
		sb.WriteString(warningStyle.Render("warning: " + warn.String()))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderTable(tb *model.TableBlock) string {
	rows := make([][]string, tb.RowCount())
	for i := range rows {
		rows[i] = tb.Row(i).Strings()
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tb.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
