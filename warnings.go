package manifest

import "strings"

// Warning codes.
const (
	WarnEmptyDocument = "empty_document"
	WarnNoTabularRows = "no_tabular_rows"
	WarnHeaderOnly    = "header_only_table"
	WarnNoFields      = "no_fields"
	WarnRaggedRows    = "ragged_rows_padded"
)

// Warning is a non-fatal condition met while extracting. The result is still
// usable but may be incomplete.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Code + ": " + w.Message
}

// FormatWarnings joins warnings into a single line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// HasWarning reports whether warnings contains code.
func HasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
