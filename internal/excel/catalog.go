package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalogxl/internal/catalog"
	"catalogxl/internal/logger"

	"github.com/xuri/excelize/v2"
)

// CatalogSheet is the sheet the converter writes to
const CatalogSheet = "Produtos"

// ConvertResult summarizes one converter run
type ConvertResult struct {
	InputPath  string
	OutputPath string
	Rows       int
}

// OutputPath replaces the input file's extension with suffix
func OutputPath(inputPath, suffix string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + suffix
}

// ConvertCatalog reads a JSON catalog and writes it as a spreadsheet next to
// the input, named with the rule set's suffix
func ConvertCatalog(inputPath string, rules *catalog.Rules) (*ConvertResult, error) {
	logger.Info("Converting catalog", "input", inputPath, "rules", rules.Version)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %v", inputPath, err)
	}

	products, err := catalog.Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed catalog", "products", len(products))

	rows := catalog.BuildRows(products, rules)

	outputPath := OutputPath(inputPath, rules.OutputSuffix)
	if err := WriteCatalog(outputPath, rows, rules); err != nil {
		return nil, err
	}

	logger.Info("Catalog converted", "output", outputPath, "rows", len(rows))
	return &ConvertResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Rows:       len(rows),
	}, nil
}

// WriteCatalog writes the header and rows to the Produtos sheet and applies
// the rule set's column widths, cell styles and row heights
func WriteCatalog(outputPath string, rows []catalog.OutputRow, rules *catalog.Rules) error {
	editor := CreateNewFile()
	defer editor.Close()

	sheet, err := editor.FirstSheet()
	if err != nil {
		return err
	}
	if err := editor.RenameSheet(sheet, CatalogSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %v", err)
	}

	header := make([]interface{}, len(rules.Headers))
	for i, h := range rules.Headers {
		header[i] = h
	}
	if err := editor.SetRow(CatalogSheet, 1, header); err != nil {
		return err
	}

	for i, row := range rows {
		cells := row.Cells(rules)
		values := make([]interface{}, len(cells))
		for j, c := range cells {
			values[j] = c
		}
		if err := editor.SetRow(CatalogSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := applyCatalogLayout(editor, rows, rules); err != nil {
		return err
	}

	if err := editor.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save %s: %v", outputPath, err)
	}
	return nil
}

func applyCatalogLayout(editor *Editor, rows []catalog.OutputRow, rules *catalog.Rules) error {
	columns := len(rules.Headers)

	for i, width := range rules.ColumnWidths {
		if err := editor.SetColumnWidth(CatalogSheet, i+1, width); err != nil {
			return fmt.Errorf("failed to set column width: %v", err)
		}
	}

	if rules.BoldHeader {
		err := editor.ApplyStyle(CatalogSheet, 1, 1, columns, 1, &excelize.Style{
			Font: &excelize.Font{Bold: true},
		})
		if err != nil {
			return err
		}
	}

	if len(rows) == 0 {
		return nil
	}

	err := editor.ApplyStyle(CatalogSheet, 1, 2, columns, len(rows)+1, &excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	for i, row := range rows {
		if err := editor.SetRowHeight(CatalogSheet, i+2, rules.RowHeight(row)); err != nil {
			return fmt.Errorf("failed to set row height: %v", err)
		}
	}
	return nil
}
