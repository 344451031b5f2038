// Package sheetxml reads Excel workbooks, both SpreadsheetML (the
// Excel 2003 XML export) and XLSX, into one flat row model.
//
// # Row model
//
// A Sheet is the concatenated row list of a workbook. Rows keep cells
// in document order; Values expands a row into positional cell text,
// honoring the explicit column indexes SpreadsheetML uses to skip
// empty columns.
//
// # Header selection
//
// Exported workbooks put title and unit rows above the real column
// header. SelectHeaderRow ranks every row by (all cells string-typed,
// cell count) and keeps the earliest best row, so a four-cell header
// beats a nine-cell numeric data row.
package sheetxml
