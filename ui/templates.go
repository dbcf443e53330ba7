package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"strconv"

	"companydir/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

var funcMap = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	},
}

// parseTemplates parses every registered template, named by its path under
// templates/ so fragments can be executed on their own.
func parseTemplates(files fs.FS) (*template.Template, error) {
	templatesFS, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	root := template.New("").Funcs(funcMap)
	for _, name := range fragments.GetAllTemplatePaths() {
		content, err := fs.ReadFile(templatesFS, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}
	return root, nil
}

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	// Render to a buffer first so a failure can still produce a 500
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("Template error for %s (request %s): %v", templateName, c.GetString(requestIDKey), err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("Error writing template response: %v", err)
	}
}

// HTMX helpers

// isHTMX reports whether the request wants a fragment. History restores swap
// the response into <body>, so they get the full page.
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true" && c.GetHeader("HX-History-Restore-Request") != "true"
}
