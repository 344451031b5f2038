package sheetxml

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"h2resconv/internal/errors"
)

// ParseXLSX reads the first worksheet of an XLSX workbook into the
// same row model the SpreadsheetML parser produces, so the downstream
// header selection and row emission do not care which Excel format a
// dataset arrived in. Cell type is inferred from the rendered value:
// anything that does not parse as a number counts as string data.
func ParseXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open xlsx workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewStructuralError("workbook has no worksheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read worksheet rows", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.NewStructuralError("no rows found in workbook", nil).
			WithContext("path", path)
	}

	sheet := &Sheet{Rows: make([]Row, 0, len(rows))}
	for _, cells := range rows {
		row := Row{Cells: make([]Cell, 0, len(cells))}
		for _, v := range cells {
			row.Cells = append(row.Cells, Cell{
				Type:    inferCellType(v),
				Value:   v,
				HasData: true,
			})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func inferCellType(v string) string {
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return "Number"
	}
	return "String"
}
