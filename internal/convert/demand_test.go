package convert

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2resconv/internal/errors"
	"h2resconv/internal/sourcefile"
)

func TestBuildDemandTree_PadsToFullDay(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &sourcefile.TimeSeriesCSV{
		Columns: []string{"AL"},
		Times:   hourly(start, 20),
		Rows:    make([][]string, 20),
	}
	for i := range series.Rows {
		series.Rows[i] = []string{"v" + string(rune('a'+i))}
	}

	root, err := buildDemandTree(series)
	require.NoError(t, err)

	require.Len(t, root.Children, 24)
	for i, period := range root.Children {
		assert.Equal(t, "period", period.Tag)
		want := start.Add(time.Duration(i) * time.Hour).Format("2006-01-02 15:04:05")
		assert.Equal(t, want, period.Attrs[0].Value)
	}

	// Hours 21 through 24 repeat the final source row.
	lastText := root.Children[19].Children[0].Text
	for i := 20; i < 24; i++ {
		require.Len(t, root.Children[i].Children, 1)
		assert.Equal(t, lastText, root.Children[i].Children[0].Text)
	}
	assert.Equal(t, "2020-01-01 23:00:00", root.Children[23].Attrs[0].Value)
}

func TestBuildDemandTree_AlignedInputUnpadded(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &sourcefile.TimeSeriesCSV{
		Columns: []string{"AL", "AT"},
		Times:   hourly(start, 24),
		Rows:    make([][]string, 24),
	}
	for i := range series.Rows {
		series.Rows[i] = []string{"1", "2"}
	}

	root, err := buildDemandTree(series)
	require.NoError(t, err)
	assert.Len(t, root.Children, 24)
}

func TestBuildDemandTree_RaggedRowTruncates(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &sourcefile.TimeSeriesCSV{
		Columns: []string{"AL", "AT", "BA"},
		Times:   hourly(start, 24),
		Rows:    make([][]string, 24),
	}
	for i := range series.Rows {
		series.Rows[i] = []string{"1", "2", "3"}
	}
	// One short row emits only the columns it covers.
	series.Rows[5] = []string{"9", "8"}

	root, err := buildDemandTree(series)
	require.NoError(t, err)

	require.Len(t, root.Children[5].Children, 2)
	assert.Equal(t, "AL", root.Children[5].Children[0].Tag)
	assert.Equal(t, "9", root.Children[5].Children[0].Text)
	assert.Len(t, root.Children[4].Children, 3)
}

func TestBuildDemandTree_InvalidColumnName(t *testing.T) {
	series := &sourcefile.TimeSeriesCSV{
		Columns: []string{"1AL"},
		Times:   hourly(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 1),
		Rows:    [][]string{{"1"}},
	}

	_, err := buildDemandTree(series)
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeValidation, errors.TypeOf(err))
}

func TestDemandConverter_Run(t *testing.T) {
	cfg := testConfig(t)
	csv := "time,AL,AT\n" +
		"1/1/2020 0:00,10,20\n" +
		"1/1/2020 1:00,11,21\n"
	require.NoError(t, os.WriteFile(cfg.ElectricityDemandPath(), []byte(csv), 0o644))

	conv := NewDemandConverter(cfg)
	assert.Equal(t, "demand", conv.Name())
	require.NoError(t, conv.Run(context.Background(), discardLogger()))

	out, err := os.ReadFile(cfg.ExportPath(conv.OutputFile()))
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "<?xml version='1.0' encoding='utf-8'?>\n<root>"))
	assert.Equal(t, 24, strings.Count(doc, "<period "))
	assert.Contains(t, doc, `<period timestamp="2020-01-01 00:00:00">`)
	assert.Contains(t, doc, `<period timestamp="2020-01-01 23:00:00">`)
	// One source hour plus twenty-two padded copies of the second row.
	assert.Equal(t, 1, strings.Count(doc, "<AL>10</AL>"))
	assert.Equal(t, 23, strings.Count(doc, "<AL>11</AL>"))
	assert.Equal(t, 23, strings.Count(doc, "<AT>21</AT>"))
}

func TestDemandConverter_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	conv := NewDemandConverter(cfg)

	err := conv.Run(context.Background(), discardLogger())
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeStorage, errors.TypeOf(err))
}

func TestDemandConverter_MalformedTimestamp(t *testing.T) {
	cfg := testConfig(t)
	csv := "time,AL\nnot-a-date,10\n"
	require.NoError(t, os.WriteFile(cfg.ElectricityDemandPath(), []byte(csv), 0o644))

	err := NewDemandConverter(cfg).Run(context.Background(), discardLogger())
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeParsing, errors.TypeOf(err))
}
