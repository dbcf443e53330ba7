package dataset

import (
	"fmt"
	"math"
	"strconv"

	"companydir/internal/errors"
)

// ValueKind classifies a cell value
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindString
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Value is one scalar cell. Text is the trimmed cell text as stored in the
// file; Number is set only for KindNumber.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// ParseValue classifies already-trimmed cell text. NaN and infinities are
// kept as strings.
func ParseValue(text string) Value {
	if text == "" {
		return Value{Kind: KindEmpty}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Value{Kind: KindNumber, Text: text, Number: n}
	}
	return Value{Kind: KindString, Text: text}
}

// IsEmpty reports whether the cell is missing
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

func (v Value) String() string {
	return v.Text
}

// Schema is the ordered, fixed set of column names shared by all records
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from header names. Empty and duplicate names are
// rejected since records are addressed by column name.
func NewSchema(columns []string) (Schema, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return Schema{}, errors.FormatError(fmt.Sprintf("column %d has an empty header", i+1), nil)
		}
		if _, dup := index[name]; dup {
			return Schema{}, errors.FormatError(fmt.Sprintf("duplicate column header %q", name), nil)
		}
		index[name] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Schema{columns: cols, index: index}, nil
}

// Len returns the number of columns
func (s Schema) Len() int {
	return len(s.columns)
}

// Index returns the position of a column
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the schema contains the column
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Record is one row, with exactly one value per schema column
type Record struct {
	schema *Schema
	values []Value
}

// Get returns the value of the named column
func (r Record) Get(column string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	i, ok := r.schema.Index(column)
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}
