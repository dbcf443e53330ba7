// Package summary computes per-column figures for the rows on screen.
package summary

import (
	domainDataset "companydir/domain/dataset"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one numeric display column
type ColumnSummary struct {
	Column string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64 // sample standard deviation, 0 for a single value
}

// Summarize returns a summary for every column of view whose non-empty cells
// are all numbers, in column order. Columns with no numbers, or with any text
// cell, are skipped. An empty view yields nil.
func Summarize(view domainDataset.ViewRows) []ColumnSummary {
	if view.Len() == 0 {
		return nil
	}

	var out []ColumnSummary
	for j, col := range view.Columns {
		data, ok := numericColumn(view.Rows, j)
		if !ok {
			continue
		}
		s, err := summarize(col, data)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func numericColumn(rows [][]domainDataset.Value, j int) (stats.Float64Data, bool) {
	data := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		switch row[j].Kind {
		case domainDataset.KindNumber:
			data = append(data, row[j].Number)
		case domainDataset.KindString:
			return nil, false
		}
	}
	return data, len(data) > 0
}

func summarize(column string, data stats.Float64Data) (ColumnSummary, error) {
	s := ColumnSummary{Column: column, Count: data.Len()}
	var err error
	if s.Min, err = data.Min(); err != nil {
		return s, err
	}
	if s.Max, err = data.Max(); err != nil {
		return s, err
	}
	if s.Mean, err = data.Mean(); err != nil {
		return s, err
	}
	if s.Median, err = data.Median(); err != nil {
		return s, err
	}
	if s.Count > 1 {
		s.StdDev = stat.StdDev(data, nil)
	}
	return s, nil
}
