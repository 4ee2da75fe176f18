package excel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"catalogxl/internal/logger"

	"github.com/xuri/excelize/v2"
)

// FilterSheet is the sheet the filtered table is written to
const FilterSheet = "Sheet1"

// FilterResult reports the row counts of a filter run
type FilterResult struct {
	OutputPath    string
	ReferenceRows int
	DataRows      int
	KeptRows      int
}

// table is the first sheet of a workbook with its header split off
type table struct {
	sheet  string
	header []string
	rows   [][]string
}

func (t *table) columnIndex(name string) int {
	for i, h := range t.header {
		if h == name {
			return i
		}
	}
	return -1
}

func readTable(editor *Editor) (*table, error) {
	sheet, err := editor.FirstSheet()
	if err != nil {
		return nil, err
	}

	rows, err := editor.GetRawRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %v", sheet, err)
	}

	t := &table{sheet: sheet}
	if len(rows) > 0 {
		t.header = rows[0]
		t.rows = rows[1:]
	}
	return t, nil
}

// FilterByName keeps the rows of dataPath whose trimmed name column value
// appears among the trimmed, non-empty names of namesPath. Kept rows stay in
// their original order. The result is saved to outputPath and laid out with
// centered, wrapped cells.
func FilterByName(namesPath, dataPath, outputPath, nameColumn string) (*FilterResult, error) {
	logger.Info("Filtering by name", "names", namesPath, "data", dataPath, "column", nameColumn)

	namesEditor, err := OpenFile(namesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", namesPath, err)
	}
	defer namesEditor.Close()

	dataEditor, err := OpenFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", dataPath, err)
	}
	defer dataEditor.Close()

	names, err := readTable(namesEditor)
	if err != nil {
		return nil, err
	}
	data, err := readTable(dataEditor)
	if err != nil {
		return nil, err
	}

	namesCol := names.columnIndex(nameColumn)
	dataCol := data.columnIndex(nameColumn)
	if namesCol < 0 || dataCol < 0 {
		return nil, fmt.Errorf("column %q was not found in one of the files", nameColumn)
	}

	reference := nameSet(names.rows, namesCol)
	logger.Debug("Reference names loaded", "unique", len(reference))

	var kept []int
	for i, row := range data.rows {
		name, ok := cellAt(row, dataCol)
		if !ok {
			continue
		}
		if _, found := reference[strings.TrimSpace(name)]; found {
			kept = append(kept, i)
		}
	}

	if err := writeFiltered(outputPath, dataEditor, data, kept); err != nil {
		return nil, err
	}
	if err := ApplyCenteredLayout(outputPath); err != nil {
		return nil, err
	}

	result := &FilterResult{
		OutputPath:    outputPath,
		ReferenceRows: len(names.rows),
		DataRows:      len(data.rows),
		KeptRows:      len(kept),
	}
	logger.Info("Filter completed",
		"output", outputPath,
		"reference_rows", result.ReferenceRows,
		"data_rows", result.DataRows,
		"kept_rows", result.KeptRows)
	return result, nil
}

// nameSet collects the trimmed values of a column, skipping empty cells
func nameSet(rows [][]string, col int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, row := range rows {
		if name, ok := cellAt(row, col); ok {
			set[strings.TrimSpace(name)] = struct{}{}
		}
	}
	return set
}

// cellAt returns a cell's value, reporting false for missing or empty cells
func cellAt(row []string, col int) (string, bool) {
	if col >= len(row) || row[col] == "" {
		return "", false
	}
	return row[col], true
}

func writeFiltered(outputPath string, source *Editor, data *table, kept []int) error {
	editor := CreateNewFile()
	defer editor.Close()

	header := make([]interface{}, len(data.header))
	for i, h := range data.header {
		header[i] = h
	}
	if err := editor.SetRow(FilterSheet, 1, header); err != nil {
		return err
	}

	for out, src := range kept {
		row := data.rows[src]
		values := make([]interface{}, len(row))
		formats := make([]*excelize.Style, len(row))
		for col, raw := range row {
			if raw == "" {
				values[col] = nil
				continue
			}
			// data rows start on sheet row 2
			cell, err := excelize.CoordinatesToCellName(col+1, src+2)
			if err != nil {
				return err
			}
			cellType, err := source.GetCellDataType(data.sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read type of %s: %v", cell, err)
			}
			values[col] = typedValue(raw, cellType)

			// dates are stored as serial numbers and only read as dates
			// through their number format
			if formats[col], err = source.NumberFormat(data.sheet, cell); err != nil {
				return err
			}
		}
		if err := editor.SetRow(FilterSheet, out+2, values); err != nil {
			return err
		}
		for col, format := range formats {
			if format == nil {
				continue
			}
			if err := editor.ApplyStyle(FilterSheet, col+1, out+2, col+1, out+2, format); err != nil {
				return err
			}
		}
	}

	if err := editor.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %v", outputPath, err)
	}
	return nil
}

// ApplyCenteredLayout sizes every column of the first sheet to its longest
// value and centers and wraps all used cells, keeping their number formats.
// The file is saved in place.
func ApplyCenteredLayout(path string) error {
	editor, err := OpenFile(path)
	if err != nil {
		return err
	}
	defer editor.Close()

	sheet, err := editor.FirstSheet()
	if err != nil {
		return err
	}

	rows, err := editor.GetAllRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows from %s: %v", sheet, err)
	}

	widths := columnWidths(rows)
	if len(widths) == 0 {
		return editor.Save()
	}

	for i, width := range widths {
		if err := editor.SetColumnWidth(sheet, i+1, width); err != nil {
			return fmt.Errorf("failed to set column width: %v", err)
		}
	}

	err = editor.AlignRange(sheet, 1, 1, len(widths), len(rows),
		&excelize.Alignment{WrapText: true, Horizontal: "center", Vertical: "center"})
	if err != nil {
		return err
	}

	if err := editor.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %v", path, err)
	}
	return nil
}

// columnWidths gives each column its longest value plus 5, or 15 when no
// value is longer than 10 characters
func columnWidths(rows [][]string) []float64 {
	var longest []int
	for _, row := range rows {
		for col, value := range row {
			for len(longest) <= col {
				longest = append(longest, 0)
			}
			if n := utf8.RuneCountInString(value); n > longest[col] {
				longest[col] = n
			}
		}
	}

	widths := make([]float64, len(longest))
	for i, n := range longest {
		if n > 10 {
			widths[i] = float64(n + 5)
		} else {
			widths[i] = 15
		}
	}
	return widths
}
