package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// CreateNewFile creates a new Excel file in memory with the default Sheet1
func CreateNewFile() *Editor {
	file := excelize.NewFile()
	return &Editor{
		file:     file,
		filepath: "",
	}
}

// FirstSheet returns the name of the first sheet in the workbook
func (e *Editor) FirstSheet() (string, error) {
	sheets := e.file.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", e.filepath)
	}
	return sheets[0], nil
}

// RenameSheet changes a sheet's name
func (e *Editor) RenameSheet(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	return e.file.SetSheetName(oldName, newName)
}

// SetRow writes values left to right starting at column A of a 1-based row
func (e *Editor) SetRow(sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := e.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %v", row, err)
	}
	return nil
}

// GetAllRows returns all rows from a sheet as displayed text
func (e *Editor) GetAllRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

// GetRawRows returns all rows from a sheet without number formatting applied
func (e *Editor) GetRawRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// GetCellDataType returns the stored type of a cell
func (e *Editor) GetCellDataType(sheet, cell string) (excelize.CellType, error) {
	return e.file.GetCellType(sheet, cell)
}

// SetColumnWidth sets the width of a 1-based column
func (e *Editor) SetColumnWidth(sheet string, col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return e.file.SetColWidth(sheet, name, name, width)
}

// SetRowHeight sets the height of a 1-based row
func (e *Editor) SetRowHeight(sheet string, row int, height float64) error {
	return e.file.SetRowHeight(sheet, row, height)
}

// ApplyStyle registers a style and applies it to the rectangle between two
// 1-based coordinates
func (e *Editor) ApplyStyle(sheet string, fromCol, fromRow, toCol, toRow int, style *excelize.Style) error {
	styleID, err := e.file.NewStyle(style)
	if err != nil {
		return fmt.Errorf("failed to create style: %v", err)
	}

	topLeft, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}

	err = e.file.SetCellStyle(sheet, topLeft, bottomRight, styleID)
	if err != nil {
		return fmt.Errorf("failed to apply style to %s:%s: %v", topLeft, bottomRight, err)
	}
	return nil
}

// NumberFormat returns a style holding only the number format of a cell, or
// nil when the cell is General
func (e *Editor) NumberFormat(sheet, cell string) (*excelize.Style, error) {
	styleID, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read style of %s: %v", cell, err)
	}
	if styleID == 0 {
		return nil, nil
	}

	style, err := e.file.GetStyle(styleID)
	if err != nil {
		return nil, fmt.Errorf("failed to read style %d: %v", styleID, err)
	}
	if style.NumFmt == 0 && style.CustomNumFmt == nil {
		return nil, nil
	}
	return &excelize.Style{NumFmt: style.NumFmt, CustomNumFmt: style.CustomNumFmt}, nil
}

// AlignRange sets the alignment of every cell in the rectangle between two
// 1-based coordinates. The rest of each cell's style, number format
// included, is kept.
func (e *Editor) AlignRange(sheet string, fromCol, fromRow, toCol, toRow int, alignment *excelize.Alignment) error {
	aligned := make(map[int]int)

	for row := fromRow; row <= toRow; row++ {
		for col := fromCol; col <= toCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}

			base, err := e.file.GetCellStyle(sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read style of %s: %v", cell, err)
			}

			styleID, ok := aligned[base]
			if !ok {
				style, err := e.file.GetStyle(base)
				if err != nil {
					return fmt.Errorf("failed to read style %d: %v", base, err)
				}
				style.Alignment = alignment
				if styleID, err = e.file.NewStyle(style); err != nil {
					return fmt.Errorf("failed to create style: %v", err)
				}
				aligned[base] = styleID
			}

			if err := e.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("failed to apply style to %s: %v", cell, err)
			}
		}
	}
	return nil
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// parseNumericValue attempts to parse a string as a number and returns the appropriate type
// Returns the original string if it's not a valid number
func parseNumericValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	// Try to parse as integer first
	if intVal, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intVal
	}

	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}

	return value
}

// typedValue converts a raw cell value back into the type it was stored with
func typedValue(raw string, cellType excelize.CellType) interface{} {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	default:
		return parseNumericValue(raw)
	}
}
