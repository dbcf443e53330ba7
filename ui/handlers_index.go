package ui

import (
	domainDataset "companydir/domain/dataset"
	"companydir/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// indexQuery is the request-local selection state
type indexQuery struct {
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
}

// handleIndex renders the directory page, or only the table fragment for
// HTMX requests. The selection comes from the query string on every request.
func (s *Server) handleIndex(c *gin.Context) {
	var q indexQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.logger.Debug("Ignoring invalid query %q: %v", c.Request.URL.RawQuery, err)
		q = indexQuery{Category: c.Query("category"), Page: 1}
	}

	sel := domainDataset.Select(q.Category)
	if sel.IsSet() && !s.dataset.HasCategory(sel.Value()) {
		s.logger.Debug("Unknown %s %q selected", s.dataset.CategoryColumn(), sel.Value())
	}
	view := domainDataset.Filter(s.dataset, sel)
	table := newTablePage(view, sel, q.Page, s.options.PageSize)

	// the same URL serves the page and the fragment
	c.Header("Vary", "HX-Request")
	if isHTMX(c) {
		s.renderTemplate(c, fragments.Table, table)
		return
	}

	s.renderTemplate(c, fragments.IndexPage, indexPage{
		Title:          s.options.Title,
		Intro:          s.intro,
		CategoryColumn: s.dataset.CategoryColumn(),
		Categories:     s.dataset.Categories(),
		Table:          table,
	})
}
