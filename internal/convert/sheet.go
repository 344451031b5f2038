package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"h2resconv/internal/config"
	"h2resconv/internal/dataset"
	"h2resconv/internal/sheetxml"
	"h2resconv/internal/sourcefile"
	"h2resconv/internal/xmltree"
)

// SheetSpec describes one spreadsheet dataset: its file name (shared
// by source and output), the root tag of the produced document and
// whether headers are lowercased.
type SheetSpec struct {
	Name             string
	File             string
	RootTag          string
	LowercaseHeaders bool
}

// SheetConverter turns one exported workbook into a flat row document.
// The source is the SpreadsheetML export by default; an .xlsx workbook
// of the same base name is picked up when the XML export is absent.
type SheetConverter struct {
	cfg  *config.Config
	spec SheetSpec
}

// NewSheetConverter creates a spreadsheet converter for one dataset.
func NewSheetConverter(cfg *config.Config, spec SheetSpec) *SheetConverter {
	return &SheetConverter{cfg: cfg, spec: spec}
}

// Name identifies the conversion in logs and on the command line.
func (c *SheetConverter) Name() string { return c.spec.Name }

// Inputs lists the workbook the conversion reads, after the .xlsx
// fallback has been applied.
func (c *SheetConverter) Inputs() []string {
	return []string{resolveSheetInput(c.cfg.DataPath(c.spec.File))}
}

// OutputFile returns the document name under the export directory.
func (c *SheetConverter) OutputFile() string { return c.spec.File }

// Run parses the workbook, emits one <row> per data row and pads the
// trailing day when the rows carry a period column.
func (c *SheetConverter) Run(ctx context.Context, logger *slog.Logger) error {
	input := resolveSheetInput(c.cfg.DataPath(c.spec.File))

	var sheet *sheetxml.Sheet
	if strings.EqualFold(filepath.Ext(input), ".xlsx") {
		parsed, err := sheetxml.ParseXLSX(input)
		if err != nil {
			return err
		}
		sheet = parsed
	} else {
		r, err := sourcefile.Open(input)
		if err != nil {
			return err
		}
		parsed, err := sheetxml.Parse(r)
		r.Close()
		if err != nil {
			return err
		}
		sheet = parsed
	}

	logger.InfoContext(ctx, "workbook parsed",
		slog.String("path", input),
		slog.Int("rows", len(sheet.Rows)))

	root, err := buildSheetTree(sheet, c.spec)
	if err != nil {
		return err
	}
	return xmltree.WriteFile(c.cfg.ExportPath(c.spec.File), root)
}

// resolveSheetInput returns the configured path when it exists, or the
// .xlsx sibling when only that was exported.
func resolveSheetInput(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	alt := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}

// buildSheetTree selects the header row, emits the data rows below it
// and applies the period-keyed full-day pad.
func buildSheetTree(sheet *sheetxml.Sheet, spec SheetSpec) (*xmltree.Node, error) {
	headerIdx, err := sheetxml.SelectHeaderRow(sheet.Rows)
	if err != nil {
		return nil, err
	}
	headers := sheet.Rows[headerIdx].Values()

	// Columns with blank headers are dropped; the rest become element
	// names, padded or truncated against each row below.
	type column struct {
		idx int
		tag string
	}
	columns := make([]column, 0, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		if spec.LowercaseHeaders {
			header = strings.ToLower(header)
		}
		tag, err := xmltree.BuildTag([]string{header}, xmltree.TagPolicy{})
		if err != nil {
			return nil, err
		}
		columns = append(columns, column{idx: i, tag: tag})
	}

	root := xmltree.New(spec.RootTag)
	for _, row := range sheet.Rows[headerIdx+1:] {
		values := row.Values()
		if rowEmpty(values) {
			continue
		}
		rowEl := root.Child("row")
		for _, col := range columns {
			text := ""
			if col.idx < len(values) {
				text = values[col.idx]
			}
			rowEl.AddText(col.tag, text)
		}
	}

	padSheetRows(root)
	return root, nil
}

func rowEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// padSheetRows appends copies of the final row until its period number
// reaches a full-day boundary. Rows without a parseable period column
// are left alone; period numbering is the only key this pad knows.
func padSheetRows(root *xmltree.Node) {
	rows := root.FindAll("row")
	if len(rows) == 0 {
		return
	}
	last := rows[len(rows)-1]
	periodEl := last.Find("period")
	if periodEl == nil {
		return
	}
	lastPeriod, err := strconv.Atoi(strings.TrimSpace(periodEl.Text))
	if err != nil {
		return
	}
	missing := dataset.MissingToFullDay(lastPeriod)
	if missing == 0 {
		return
	}

	// Duplicate tags collapse to their last value, keeping first
	// occurrence order, before the row is repeated.
	tags := make([]string, 0, len(last.Children))
	texts := make(map[string]string, len(last.Children))
	for _, child := range last.Children {
		if _, seen := texts[child.Tag]; !seen {
			tags = append(tags, child.Tag)
		}
		texts[child.Tag] = child.Text
	}

	for k := 1; k <= missing; k++ {
		row := root.Child("row")
		for _, tag := range tags {
			if tag == "period" {
				row.AddText("period", strconv.Itoa(lastPeriod+k))
				continue
			}
			row.AddText(tag, texts[tag])
		}
	}
}
