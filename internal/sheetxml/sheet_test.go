package sheetxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2resconv/internal/errors"
)

const sampleWorkbook = `<?xml version="1.0"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet ss:Name="Sheet1">
  <Table>
   <Row>
    <Cell><Data ss:Type="String">year</Data></Cell>
    <Cell><Data ss:Type="String">period</Data></Cell>
    <Cell><Data ss:Type="String">demand</Data></Cell>
   </Row>
   <Row>
    <Cell><Data ss:Type="Number">2020</Data></Cell>
    <Cell><Data ss:Type="Number">1</Data></Cell>
    <Cell><Data ss:Type="Number">1070.35</Data></Cell>
   </Row>
   <Row>
    <Cell><Data ss:Type="Number">2020</Data></Cell>
    <Cell ss:Index="3"><Data ss:Type="Number">980.1</Data></Cell>
   </Row>
  </Table>
 </Worksheet>
</Workbook>`

func TestParse_Workbook(t *testing.T) {
	sheet, err := Parse(strings.NewReader(sampleWorkbook))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	assert.True(t, header.AllString())
	assert.Equal(t, 3, header.CellCount())
	assert.Equal(t, []string{"year", "period", "demand"}, header.Values())

	data := sheet.Rows[1]
	assert.False(t, data.AllString())
	assert.Equal(t, []string{"2020", "1", "1070.35"}, data.Values())
}

func TestParse_IndexSkipsColumns(t *testing.T) {
	sheet, err := Parse(strings.NewReader(sampleWorkbook))
	require.NoError(t, err)

	// ss:Index="3" on the second cell leaves column 2 empty.
	assert.Equal(t, []string{"2020", "", "980.1"}, sheet.Rows[2].Values())
	assert.Equal(t, 2, sheet.Rows[2].CellCount())
}

func TestParse_LowercaseTypeAttribute(t *testing.T) {
	doc := `<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet><Table>
  <Row><Cell><Data type="String">node</Data></Cell></Row>
 </Table></Worksheet>
</Workbook>`

	sheet, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.True(t, sheet.Rows[0].AllString())
	assert.Equal(t, []string{"node"}, sheet.Rows[0].Values())
}

func TestParse_CellWithoutData(t *testing.T) {
	doc := `<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet><Table>
  <Row>
   <Cell><Data Type="String">a</Data></Cell>
   <Cell />
  </Row>
 </Table></Worksheet>
</Workbook>`

	sheet, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	row := sheet.Rows[0]
	assert.False(t, row.AllString())
	assert.Equal(t, []string{"a", ""}, row.Values())
}

func TestParse_ConcatenatesWorksheets(t *testing.T) {
	doc := `<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet><Table>
  <Row><Cell><Data Type="String">first</Data></Cell></Row>
 </Table></Worksheet>
 <Worksheet><Table>
  <Row><Cell><Data Type="String">second</Data></Cell></Row>
 </Table></Worksheet>
</Workbook>`

	sheet, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"first"}, sheet.Rows[0].Values())
	assert.Equal(t, []string{"second"}, sheet.Rows[1].Values())
}

func TestParse_EmptyWorkbook(t *testing.T) {
	doc := `<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet">
 <Worksheet><Table /></Worksheet>
</Workbook>`

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<Workbook><Worksheet>"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeParsing, errors.TypeOf(err))
}
