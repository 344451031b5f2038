package sheetxml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"h2resconv/internal/errors"
)

func writeTestXLSX(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "year"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "period"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "demand"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 2020))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", 1070.35))

	path := filepath.Join(t.TempDir(), "demand.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseXLSX(t *testing.T) {
	sheet, err := ParseXLSX(writeTestXLSX(t))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)

	header := sheet.Rows[0]
	assert.True(t, header.AllString())
	assert.Equal(t, []string{"year", "period", "demand"}, header.Values())

	data := sheet.Rows[1]
	assert.False(t, data.AllString())
	assert.Equal(t, []string{"2020", "1", "1070.35"}, data.Values())
}

func TestParseXLSX_MissingFile(t *testing.T) {
	_, err := ParseXLSX(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeParsing, errors.TypeOf(err))
}
