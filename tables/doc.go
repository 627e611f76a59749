// Package tables rebuilds the line-item table from the tabular rows of a
// document.
//
// # Reconstruction
//
// [Reconstruct] promotes the first tabular row to a header and keeps the rest
// as the body:
//
//	block := tables.Reconstruct(part.Tabular.Rows, tables.DefaultConfig())
//
// Header names are made unique by [DedupeHeader]: a null header cell becomes
// UnnamedK (K is the 1-based column) and the n-th repeat of a name becomes
// name_n, so ["A", "B", "A", "A"] becomes ["A", "B", "A_2", "A_3"].
//
// # Package Type
//
// Every body row gets a PackageType cell holding the first keyword of
// [Config.PackageKeywords] found anywhere in the row text, or null. The row
// text includes the column names, so a header such as "CTNS" marks every row
// beneath it. The default list is [DefaultPackageKeywords]; order matters because earlier
// keywords win.
//
// # Normalization
//
// Body cells are passed through the configured currency normalizer after the
// package type is read, so "£1.50" becomes "1.50" while header names are left
// alone.
package tables
