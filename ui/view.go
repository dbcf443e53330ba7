package ui

import (
	"html/template"
	"net/url"
	"strconv"

	domainDataset "companydir/domain/dataset"
	"companydir/internal/summary"
)

// indexPage is the data behind index.html
type indexPage struct {
	Title          string
	Intro          template.HTML
	CategoryColumn string
	Categories     []string
	Table          tablePage
}

// tablePage is the data behind the table fragment: one page of ViewRows
type tablePage struct {
	Columns      []string
	Rows         [][]domainDataset.Value
	Selected     string
	HasSelection bool
	Total        int
	Page         int
	TotalPages   int
	FirstRow     int
	LastRow      int
	PrevURL      string
	NextURL      string
	Summaries    []summary.ColumnSummary
}

// newTablePage slices view to the requested page. page is clamped into
// [1, TotalPages]; an empty view has a single empty page.
func newTablePage(view domainDataset.ViewRows, sel domainDataset.Selection, page, pageSize int) tablePage {
	total := view.Len()
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	tp := tablePage{
		Columns:      view.Columns,
		Rows:         view.Rows[start:end],
		Selected:     sel.Value(),
		HasSelection: sel.IsSet(),
		Total:        total,
		Page:         page,
		TotalPages:   totalPages,
		Summaries:    summary.Summarize(view),
	}
	if total > 0 {
		tp.FirstRow = start + 1
		tp.LastRow = end
	}
	if page > 1 {
		tp.PrevURL = pageURL(sel, page-1)
	}
	if page < totalPages {
		tp.NextURL = pageURL(sel, page+1)
	}
	return tp
}

func pageURL(sel domainDataset.Selection, page int) string {
	q := url.Values{}
	if sel.IsSet() {
		q.Set("category", sel.Value())
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
