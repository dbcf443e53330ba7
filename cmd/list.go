package cmd

import (
	"fmt"
	"io"
	"strconv"

	domainDataset "companydir/domain/dataset"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [value]",
		Short: "Print the records of one category value, or every category with its count",
		Long: `Load the directory and print it to the terminal instead of serving it.

Example: companydir list Food -f companies.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cfg, configuredLogger(cfg))
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return writeCategories(cmd.OutOrStdout(), ds)
			}
			return writeView(cmd.OutOrStdout(), domainDataset.Filter(ds, domainDataset.Select(args[0])))
		},
	}
}

func writeCategories(w io.Writer, ds *domainDataset.Dataset) error {
	counts := make(map[string]int)
	for _, rec := range ds.Records() {
		category, _ := rec.Get(ds.CategoryColumn())
		counts[category.Text]++
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{ds.CategoryColumn(), "Records"})
	for _, category := range ds.Categories() {
		if err := table.Append([]string{category, strconv.Itoa(counts[category])}); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeView(w io.Writer, view domainDataset.ViewRows) error {
	table := tablewriter.NewWriter(w)
	table.Header(view.Columns)
	for _, row := range view.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d records\n", view.Len())
	return err
}
