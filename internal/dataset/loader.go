// Package dataset loads the directory spreadsheet into an immutable Dataset.
package dataset

import (
	"fmt"
	"strings"
	"time"

	"companydir/adapters/excel"
	domainDataset "companydir/domain/dataset"
	"companydir/internal"
	"companydir/internal/errors"
)

// Loader reads a spreadsheet once and validates it against the category column
type Loader struct {
	config excel.ExcelConfig
	logger *internal.Logger
}

// NewLoader creates a loader for the configured file
func NewLoader(config excel.ExcelConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{config: config, logger: logger.Named("Loader")}
}

// Load reads path with default reader settings. See Loader.Load.
func Load(path, requiredColumn string) (*domainDataset.Dataset, error) {
	config := excel.DefaultExcelConfig()
	config.FilePath = path
	return NewLoader(config, nil).Load(requiredColumn)
}

// Load parses the file, fails with a SchemaError when requiredColumn is not a
// header, and silently drops rows whose requiredColumn cell is empty. The
// number of dropped rows is available from Dataset.Dropped.
func (l *Loader) Load(requiredColumn string) (*domainDataset.Dataset, error) {
	requiredColumn = strings.TrimSpace(requiredColumn)
	if requiredColumn == "" {
		return nil, errors.ConfigInvalid("required column name must not be empty")
	}

	start := time.Now()
	table, err := excel.NewDataReader(l.config).ReadData()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", l.config.FilePath)
	}

	schema, err := domainDataset.NewSchema(l.headerNames(table.Headers))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid header row in %s", l.config.FilePath)
	}
	if !schema.Has(requiredColumn) {
		return nil, errors.SchemaError(requiredColumn)
	}
	catIdx, _ := schema.Index(requiredColumn)

	rows := make([][]domainDataset.Value, 0, len(table.Rows))
	dropped := 0
	for i, raw := range table.Rows {
		values, err := alignRow(raw, schema.Len())
		if err != nil {
			// +2: 1-based rows, after the header row
			return nil, errors.Wrapf(err, "row %d of %s", i+2, l.config.FilePath)
		}
		if values[catIdx].IsEmpty() {
			l.logger.Trace("Dropping row %d: empty %s", i+2, requiredColumn)
			dropped++
			continue
		}
		rows = append(rows, values)
	}

	ds, err := domainDataset.New(schema, requiredColumn, rows, dropped)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loaded %s: %d records, %d categories, %d rows dropped for missing %s (%.2fms)",
		l.config.FilePath, ds.Len(), len(ds.Categories()), ds.Dropped(), requiredColumn,
		float64(time.Since(start).Nanoseconds())/1e6)
	return ds, nil
}

// headerNames names blank header cells "Unnamed: N" after their 0-based
// position, so a stray empty header does not hide its column.
func (l *Loader) headerNames(headers []string) []string {
	names := make([]string, len(headers))
	for i, h := range headers {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
			l.logger.Warn("Column %d of %s has no header, using %q", i+1, l.config.FilePath, h)
		}
		names[i] = h
	}
	return names
}

// alignRow pads short rows with empty values. Non-empty cells past the last
// header have no column to belong to and are rejected.
func alignRow(raw []string, width int) ([]domainDataset.Value, error) {
	for j := width; j < len(raw); j++ {
		if raw[j] != "" {
			return nil, errors.FormatError(fmt.Sprintf("value %q in column %d has no header", raw[j], j+1), nil)
		}
	}

	values := make([]domainDataset.Value, width)
	for j := 0; j < width && j < len(raw); j++ {
		values[j] = domainDataset.ParseValue(raw[j])
	}
	return values, nil
}
