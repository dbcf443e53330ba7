package dataset

// Selection is zero or one category value chosen by a user. The zero value
// is the unset selection.
type Selection struct {
	value string
	set   bool
}

// Select returns a selection of value. The empty string is the dropdown's
// placeholder option and yields the unset selection.
func Select(value string) Selection {
	if value == "" {
		return Selection{}
	}
	return Selection{value: value, set: true}
}

// IsSet reports whether a category was chosen
func (s Selection) IsSet() bool {
	return s.set
}

// Value returns the chosen category, or "" when unset
func (s Selection) Value() string {
	return s.value
}

// ViewRows is the table body for a selection: the display columns and one
// row of values per matching record, aligned to Columns.
type ViewRows struct {
	Columns []string
	Rows    [][]Value
}

// Len returns the number of rows
func (v ViewRows) Len() int {
	return len(v.Rows)
}

// Filter returns the records whose category equals the selection exactly, in
// dataset order, without the category column. An unset selection or a value
// outside the CategorySet gives no rows.
func Filter(ds *Dataset, sel Selection) ViewRows {
	if ds == nil {
		return ViewRows{Columns: []string{}, Rows: [][]Value{}}
	}

	view := ViewRows{Columns: ds.DisplayColumns(), Rows: [][]Value{}}
	if !sel.IsSet() {
		return view
	}

	for _, rec := range ds.records {
		if rec.values[ds.categoryIndex].Text != sel.value {
			continue
		}
		row := make([]Value, 0, len(rec.values)-1)
		for i, v := range rec.values {
			if i != ds.categoryIndex {
				row = append(row, v)
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
