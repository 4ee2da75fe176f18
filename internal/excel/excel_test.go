package excel

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalogxl/internal/catalog"
	"catalogxl/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const sampleCatalog = `[
	{
		"name": "Bomba Centrífuga",
		"internalReference": "BC-100",
		"descriptions": [{"value": "Características\n- Vazão: 10m³/h\n- Potência: 2HP\n- Trifásica"}],
		"optionals": [{"name": "Tensão", "optionals": [{"name": "220V"}, {"name": "380V"}]}]
	},
	{
		"name": "Filtro",
		"productInformation": {"internalReference": "FL-7"},
		"optionals": {"budgetPage": true, "productPage": false}
	}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mustRules(t *testing.T, version string) *catalog.Rules {
	t.Helper()
	rules, err := catalog.RulesFor(version, nil)
	require.NoError(t, err)
	return rules
}

func cellStyle(t *testing.T, f *excelize.File, sheet, cell string) *excelize.Style {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	return style
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "catalog_FINAL.xlsx"), OutputPath(filepath.Join("data", "catalog.json"), "_FINAL.xlsx"))
	assert.Equal(t, "catalog_CONSOLIDADO.xlsx", OutputPath("catalog", "_CONSOLIDADO.xlsx"))
	assert.Equal(t, filepath.Join("v1.2", "base_FILTRADO.xlsx"), OutputPath(filepath.Join("v1.2", "base.xlsx"), "_FILTRADO.xlsx"))
}

func TestConvertCatalog_V2(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "catalog.json", sampleCatalog)

	result, err := ConvertCatalog(input, mustRules(t, "v2"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "catalog_FINAL.xlsx"), result.OutputPath)
	assert.Equal(t, 2, result.Rows)

	f, err := excelize.OpenFile(result.OutputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{CatalogSheet}, f.GetSheetList())

	rows, err := f.GetRows(CatalogSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"PRODUTO", "DESCRIÇÃO COMPLETA", "REF. INTERNA", "OPCIONAIS"}, rows[0])
	assert.Equal(t, []string{
		"Bomba Centrífuga",
		"Características\n• Vazão: 10m³/h\n• Potência: 2HP\n• Trifásica",
		"BC-100",
		"• Tensão:\n  ▸ 220V\n  ▸ 380V",
	}, rows[1])
	assert.Equal(t, []string{
		"Filtro",
		catalog.DescriptionPlaceholder,
		"FL-7",
		"• Incluso no orçamento: Sim\n• Visível no catálogo: Não",
	}, rows[2])

	for col, want := range map[string]float64{"A": 35, "B": 70, "C": 20, "D": 40} {
		width, err := f.GetColWidth(CatalogSheet, col)
		require.NoError(t, err)
		assert.Equal(t, want, width, "column %s", col)
	}

	header := cellStyle(t, f, CatalogSheet, "B1")
	require.NotNil(t, header.Font)
	assert.True(t, header.Font.Bold)

	data := cellStyle(t, f, CatalogSheet, "D3")
	require.NotNil(t, data.Alignment)
	assert.True(t, data.Alignment.WrapText)
	assert.Equal(t, "top", data.Alignment.Vertical)

	height, err := f.GetRowHeight(CatalogSheet, 2)
	require.NoError(t, err)
	assert.Equal(t, 60.0, height)
}

func TestConvertCatalog_V1(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "catalog.json", sampleCatalog)

	result, err := ConvertCatalog(input, mustRules(t, "v1"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "catalog_CONSOLIDADO.xlsx"), result.OutputPath)

	f, err := excelize.OpenFile(result.OutputPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CatalogSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"PRODUTO", "DESCRIÇÃO COMPLETA", "OPCIONAIS"}, rows[0])
	assert.Equal(t, []string{
		"Bomba Centrífuga",
		"• Vazão: 10m³/h\n• Potência: 2HP\n• Trifásica",
		"• Tensão: 220V\n• Tensão: 380V",
	}, rows[1])
	assert.Equal(t, "• budgetPage: True\n• productPage: False", rows[2][2])

	header := cellStyle(t, f, CatalogSheet, "A1")
	if header.Font != nil {
		assert.False(t, header.Font.Bold)
	}

	height, err := f.GetRowHeight(CatalogSheet, 2)
	require.NoError(t, err)
	assert.Equal(t, 45.0, height)

	height, err = f.GetRowHeight(CatalogSheet, 3)
	require.NoError(t, err)
	assert.Equal(t, 30.0, height)
}

func TestConvertCatalog_SingleObjectAndRerun(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "single.json", `{"name":"Único","descriptions":{"value":"- a\n- b"}}`)
	rules := mustRules(t, "v2")

	read := func() [][]string {
		result, err := ConvertCatalog(input, rules)
		require.NoError(t, err)
		f, err := excelize.OpenFile(result.OutputPath)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(CatalogSheet)
		require.NoError(t, err)
		return rows
	}

	first := read()
	require.Len(t, first, 2)
	assert.Equal(t, "• a\n• b", first[1][1])
	assert.Equal(t, first, read(), "rerunning must produce identical text")
}

func TestConvertCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ConvertCatalog(filepath.Join(dir, "missing.json"), mustRules(t, "v2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog")

	input := writeFile(t, dir, "broken.json", `[{"name": `)
	_, err = ConvertCatalog(input, mustRules(t, "v2"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "broken_FINAL.xlsx"))
}

func TestWriteCatalog_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteCatalog(path, nil, mustRules(t, "v2")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CatalogSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestFilterByName(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "names.xlsx")
	data := filepath.Join(dir, "data.xlsx")
	output := filepath.Join(dir, "data_FILTRADO.xlsx")

	writeWorkbook(t, names, [][]interface{}{
		{"Nome", "Idade"},
		{" A ", 30},
		{"B", 41},
		{"", 50},
	})
	writeWorkbook(t, data, [][]interface{}{
		{"Id", "Nome", "Valor total do pedido"},
		{1, "A", 10.5},
		{2, "C", 3},
		{3, " B", 7},
		{4, nil, 9},
	})

	result, err := FilterByName(names, data, output, "Nome")
	require.NoError(t, err)
	assert.Equal(t, &FilterResult{OutputPath: output, ReferenceRows: 3, DataRows: 4, KeptRows: 2}, result)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{FilterSheet}, f.GetSheetList())

	rows, err := f.GetRows(FilterSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Id", "Nome", "Valor total do pedido"},
		{"1", "A", "10.5"},
		{"3", " B", "7"},
	}, rows)

	cellType, err := f.GetCellType(FilterSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "numbers must stay numeric")
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType, "numbers must stay numeric")

	width, err := f.GetColWidth(FilterSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 15.0, width)
	width, err = f.GetColWidth(FilterSheet, "C")
	require.NoError(t, err)
	assert.Equal(t, 26.0, width)

	style := cellStyle(t, f, FilterSheet, "B2")
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.Equal(t, "center", style.Alignment.Vertical)
	assert.True(t, style.Alignment.WrapText)
}

func TestFilterByName_KeepsNumberFormats(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "names.xlsx")
	data := filepath.Join(dir, "data.xlsx")
	output := filepath.Join(dir, "data_FILTRADO.xlsx")

	delivered := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	writeWorkbook(t, names, [][]interface{}{{"Nome"}, {"A"}})
	writeWorkbook(t, data, [][]interface{}{
		{"Nome", "Entrega"},
		{"B", delivered},
		{"A", delivered},
	})

	src, err := excelize.OpenFile(data)
	require.NoError(t, err)
	want, err := src.GetCellValue("Sheet1", "B3")
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = FilterByName(names, data, output, "Nome")
	require.NoError(t, err)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(FilterSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := f.GetCellValue(FilterSheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "45356", raw)
	assert.NotEqual(t, raw, got, "dates must not be shown as serial numbers")

	style := cellStyle(t, f, FilterSheet, "B2")
	assert.Equal(t, 14, style.NumFmt)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	assert.True(t, style.Alignment.WrapText)
}

func TestFilterByName_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	names := filepath.Join(dir, "names.xlsx")
	data := filepath.Join(dir, "data.xlsx")

	writeWorkbook(t, names, [][]interface{}{{"Nome"}, {"A"}})
	writeWorkbook(t, data, [][]interface{}{{"Name"}, {"A"}})

	_, err := FilterByName(names, data, filepath.Join(dir, "out.xlsx"), "Nome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "Nome" was not found`)
	assert.NoFileExists(t, filepath.Join(dir, "out.xlsx"))
}

func TestFilterByName_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := FilterByName(filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx"), filepath.Join(dir, "c.xlsx"), "Nome")
	require.Error(t, err)
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths([][]string{
		{"Nome", "Descrição longa"},
		{"Ana", "", "x"},
	})
	assert.Equal(t, []float64{15, 20, 15}, widths)
	assert.Empty(t, columnWidths(nil))
}

func TestTypedValue(t *testing.T) {
	assert.Equal(t, int64(12), typedValue("12", excelize.CellTypeUnset))
	assert.Equal(t, 1.5, typedValue("1.5", excelize.CellTypeNumber))
	assert.Equal(t, "007", typedValue("007", excelize.CellTypeSharedString))
	assert.Equal(t, true, typedValue("1", excelize.CellTypeBool))
	assert.Equal(t, "abc", typedValue("abc", excelize.CellTypeUnset))
}
