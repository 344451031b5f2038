package sheetxml

import (
	"encoding/xml"
	"io"

	"h2resconv/internal/errors"
)

// Cell is a single worksheet cell. Index carries the explicit 1-based
// column position used by SpreadsheetML to skip empty columns; zero
// means the cell occupies the next column. HasData distinguishes a
// cell that carried a Data element from a bare placeholder cell.
type Cell struct {
	Index   int
	Type    string
	Value   string
	HasData bool
}

// Row is an ordered list of cells as they appear in the file.
type Row struct {
	Cells []Cell
}

// Sheet is the flat row list of a workbook, worksheets concatenated in
// document order.
type Sheet struct {
	Rows []Row
}

// Values expands the row into ordered cell text, inserting empty
// strings for columns skipped via explicit indexes.
func (r Row) Values() []string {
	values := make([]string, 0, len(r.Cells))
	col := 1
	for _, c := range r.Cells {
		if c.Index > 0 {
			for col < c.Index {
				values = append(values, "")
				col++
			}
		}
		values = append(values, c.Value)
		col++
	}
	return values
}

// AllString reports whether every cell carries string-typed data.
// A row without cells is not all-string.
func (r Row) AllString() bool {
	if len(r.Cells) == 0 {
		return false
	}
	for _, c := range r.Cells {
		if !c.HasData || c.Type != "String" {
			return false
		}
	}
	return true
}

// CellCount is the raw number of cells, before index expansion.
func (r Row) CellCount() int {
	return len(r.Cells)
}

// SpreadsheetML files namespace every element and attribute; the
// decoder matches on local names only, so the wire structs carry none.
type xmlWorkbook struct {
	Rows []xmlRow `xml:"Worksheet>Table>Row"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	Index int      `xml:"Index,attr"`
	Data  *xmlData `xml:"Data"`
}

type xmlData struct {
	Type    string `xml:"Type,attr"`
	TypeAlt string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// cellType honors both spellings of the type attribute seen in
// exported workbooks, canonical "Type" first.
func (d *xmlData) cellType() string {
	if d.Type != "" {
		return d.Type
	}
	return d.TypeAlt
}

// Parse reads a SpreadsheetML workbook into the row model. The file
// must contain at least one Worksheet/Table/Row chain; an empty
// workbook is a structural defect, not an empty result.
func Parse(r io.Reader) (*Sheet, error) {
	var wb xmlWorkbook
	if err := xml.NewDecoder(r).Decode(&wb); err != nil {
		return nil, errors.NewParsingError("failed to parse spreadsheet xml", err)
	}

	sheet := &Sheet{Rows: make([]Row, 0, len(wb.Rows))}
	for _, xr := range wb.Rows {
		row := Row{Cells: make([]Cell, 0, len(xr.Cells))}
		for _, xc := range xr.Cells {
			cell := Cell{Index: xc.Index}
			if xc.Data != nil {
				cell.HasData = true
				cell.Type = xc.Data.cellType()
				cell.Value = xc.Data.Text
			}
			row.Cells = append(row.Cells, cell)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	if len(sheet.Rows) == 0 {
		return nil, errors.NewStructuralError("no rows found in workbook", nil)
	}
	return sheet, nil
}
