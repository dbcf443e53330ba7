// Package testkit generates synthetic company directories for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// CompanyGeneratorConfig configures the company data generator
type CompanyGeneratorConfig struct {
	CompanyCount      int
	Categories        []string
	MissingCategories float64 // share of rows written with an empty category
	Seed              int64
}

// DefaultCompanyConfig returns a small, stable directory
func DefaultCompanyConfig() CompanyGeneratorConfig {
	return CompanyGeneratorConfig{
		CompanyCount:      200,
		Categories:        []string{"Construction", "Food", "Healthcare", "Retail", "Textiles"},
		MissingCategories: 0.1,
		Seed:              42,
	}
}

// Headers of every generated table
var Headers = []string{"Name", "Category", "City", "Employees", "Phone"}

var cities = []string{"Aleppo", "Damascus", "Homs", "Latakia", "Tartus"}

// CompanyDataGenerator produces deterministic company rows from a seed
type CompanyDataGenerator struct {
	config CompanyGeneratorConfig
	rng    *rand.Rand
}

// NewCompanyDataGenerator creates a generator
func NewCompanyDataGenerator(config CompanyGeneratorConfig) *CompanyDataGenerator {
	return &CompanyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GeneratedTable is a header row plus data rows, along with what a loader
// should make of them.
type GeneratedTable struct {
	Headers []string
	Rows    [][]string

	// PerCategory counts rows by category; rows with no category are in Missing.
	PerCategory map[string]int
	Missing     int
}

// Generate builds the table. Calling it again on the same generator continues
// the random sequence.
func (g *CompanyDataGenerator) Generate() GeneratedTable {
	table := GeneratedTable{
		Headers:     append([]string(nil), Headers...),
		PerCategory: make(map[string]int),
	}

	for i := 0; i < g.config.CompanyCount; i++ {
		category := ""
		if len(g.config.Categories) > 0 && g.rng.Float64() >= g.config.MissingCategories {
			category = g.config.Categories[g.rng.Intn(len(g.config.Categories))]
		}
		if category == "" {
			table.Missing++
		} else {
			table.PerCategory[category]++
		}

		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("Company %04d", i+1),
			category,
			cities[g.rng.Intn(len(cities))],
			strconv.Itoa(1 + g.rng.Intn(500)),
			fmt.Sprintf("09%08d", g.rng.Intn(100000000)),
		})
	}
	return table
}

// WriteWorkbook saves the table as the first sheet of an xlsx file
func (t GeneratedTable) WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeSheetRow(f, sheet, 1, t.Headers); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// WriteCSV saves the table as a comma-separated file
func (t GeneratedTable) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	return file.Close()
}
