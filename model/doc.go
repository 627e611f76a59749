// Package model holds the format-neutral data types shared by the loaders,
// the row classifier, the table reconstructor and the field extractors.
//
// # Documents
//
// A [Document] is a rectangular grid of nullable [Cell] values. Every [Row]
// has exactly Width cells; loaders pad short rows with [Null] before building
// one, and [NewDocument] rejects a ragged grid with [ErrRaggedRow]:
//
//	doc := model.FromStrings([][]string{
//	    {"Invoice To:", ""},
//	    {"Acme Imports Ltd", ""},
//	})
//
// # Tables
//
// A [TableBlock] is the line-item table rebuilt from the dense rows of a
// document. Its header names are unique and a synthesized PackageType column
// is appended to every row:
//
//   - [TableBlock.Columns] and [TableBlock.Record] for keyed access
//   - Export methods: ToMarkdown() and ToCSV()
//
// # Fields
//
// A [FieldRecord] is one (label, value) pair harvested from the sparse rows.
// A [FieldSet] keeps records in harvest order and groups them by [Label] in
// presentation order:
//
//	for _, g := range fs.Groups() {
//	    fmt.Println(g.Label, strings.Join(g.Values, "; "))
//	}
package model
