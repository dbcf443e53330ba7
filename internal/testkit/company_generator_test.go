package testkit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCompanyDataGenerator_Deterministic(t *testing.T) {
	config := DefaultCompanyConfig()
	config.CompanyCount = 50

	a := NewCompanyDataGenerator(config).Generate()
	b := NewCompanyDataGenerator(config).Generate()
	assert.Equal(t, a, b)
}

func TestCompanyDataGenerator_Counts(t *testing.T) {
	table := NewCompanyDataGenerator(DefaultCompanyConfig()).Generate()

	require.Len(t, table.Rows, 200)
	total := table.Missing
	for category, n := range table.PerCategory {
		assert.Contains(t, DefaultCompanyConfig().Categories, category)
		total += n
	}
	assert.Equal(t, 200, total)
	assert.Positive(t, table.Missing)

	for _, row := range table.Rows {
		assert.Len(t, row, len(Headers))
	}
}

func TestCompanyDataGenerator_NoCategories(t *testing.T) {
	config := DefaultCompanyConfig()
	config.Categories = nil
	config.CompanyCount = 5

	table := NewCompanyDataGenerator(config).Generate()
	assert.Equal(t, 5, table.Missing)
	assert.Empty(t, table.PerCategory)
}

func TestGeneratedTable_WriteWorkbook(t *testing.T) {
	config := DefaultCompanyConfig()
	config.CompanyCount = 3
	table := NewCompanyDataGenerator(config).Generate()

	path := filepath.Join(t.TempDir(), "companies.xlsx")
	require.NoError(t, table.WriteWorkbook(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, table.Rows[0][0], rows[1][0])
}
