package dataset

import (
	"fmt"
	"sort"

	"companydir/internal/errors"
)

// Dataset is the loaded, immutable directory table. Every record carries the
// full schema and a non-empty category value.
type Dataset struct {
	schema         Schema
	records        []Record
	categoryColumn string
	categoryIndex  int
	categories     []string
	dropped        int
}

// New validates rows against the schema and builds a Dataset. The category
// column must exist (SchemaError) and every row must have exactly one value
// per column and a non-empty category (FormatError). dropped is the number of
// source rows the caller discarded before construction.
func New(schema Schema, categoryColumn string, rows [][]Value, dropped int) (*Dataset, error) {
	catIdx, ok := schema.Index(categoryColumn)
	if !ok {
		return nil, errors.SchemaError(categoryColumn)
	}

	ds := &Dataset{
		schema:         schema,
		records:        make([]Record, 0, len(rows)),
		categoryColumn: categoryColumn,
		categoryIndex:  catIdx,
		dropped:        dropped,
	}

	seen := make(map[string]struct{})
	for i, row := range rows {
		if len(row) != schema.Len() {
			return nil, errors.FormatError(fmt.Sprintf("row %d has %d values, schema has %d columns", i+1, len(row), schema.Len()), nil)
		}
		if row[catIdx].IsEmpty() {
			return nil, errors.FormatError(fmt.Sprintf("row %d has an empty %q value", i+1, categoryColumn), nil)
		}
		values := make([]Value, len(row))
		copy(values, row)
		ds.records = append(ds.records, Record{schema: &ds.schema, values: values})

		cat := row[catIdx].Text
		if _, dup := seen[cat]; !dup {
			seen[cat] = struct{}{}
			ds.categories = append(ds.categories, cat)
		}
	}
	sort.Strings(ds.categories)

	return ds, nil
}

// CategoryColumn returns the name of the discriminator column
func (d *Dataset) CategoryColumn() string {
	return d.categoryColumn
}

// DisplayColumns returns the columns shown in the table, i.e. every column
// except the category column.
func (d *Dataset) DisplayColumns() []string {
	cols := make([]string, 0, d.schema.Len()-1)
	for i, name := range d.schema.columns {
		if i != d.categoryIndex {
			cols = append(cols, name)
		}
	}
	return cols
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in file order
func (d *Dataset) Records() []Record {
	recs := make([]Record, len(d.records))
	copy(recs, d.records)
	return recs
}

// Categories returns the CategorySet: distinct category values sorted ascending
func (d *Dataset) Categories() []string {
	cats := make([]string, len(d.categories))
	copy(cats, d.categories)
	return cats
}

// HasCategory reports whether value is in the CategorySet
func (d *Dataset) HasCategory(value string) bool {
	i := sort.SearchStrings(d.categories, value)
	return i < len(d.categories) && d.categories[i] == value
}

// Dropped returns how many source rows were discarded for a missing category
func (d *Dataset) Dropped() int {
	return d.dropped
}
