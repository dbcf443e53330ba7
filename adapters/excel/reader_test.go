package excel

import (
	"os"
	"path/filepath"
	"testing"

	"companydir/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "companies.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadExcelFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Companies", [][]interface{}{
		{" Category ", "Name", "Employees"},
		{"Food", " Acme ", 12},
		{"Retail", "Corp", 3.5},
	})

	table, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Category", "Name", "Employees"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Food", "Acme", "12"}, table.Rows[0])
	assert.Equal(t, []string{"Retail", "Corp", "3.5"}, table.Rows[1])
}

func TestReadExcelNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"Category", "Name"},
		{"Food", "Acme"},
	})

	_, err := NewDataReader(ExcelConfig{FilePath: path, Sheet: "Missing"}).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))

	table, err := NewDataReader(ExcelConfig{FilePath: path, Sheet: "Sheet1"}).ReadData()
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestReadExcelEmptySheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", nil)

	_, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
}

func TestReadCorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o600))

	_, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
}

func TestReadCSVWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.csv")
	content := append([]byte{0xef, 0xbb, 0xbf}, []byte("Category,Name\nFood,Acme\nRetail\n")...)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	table, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Category", "Name"}, table.Headers)
	assert.Equal(t, [][]string{{"Food", "Acme"}, {"Retail"}}, table.Rows)
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := NewDataReader(ExcelConfig{FilePath: path}).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeFormatError, errors.GetCode(err))
}
