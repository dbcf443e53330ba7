// Package fragments provides template path constants for organized template management
package fragments

// Template path constants, relative to ui/templates
const (
	// Page templates
	IndexPage = "index.html"

	// Fragment templates
	Table   = "fragments/table.html"
	Pager   = "fragments/pager.html"
	Summary = "fragments/summary.html"
)

// GetAllTemplatePaths returns all template paths for registration
func GetAllTemplatePaths() []string {
	return []string{
		IndexPage,

		Table,
		Pager,
		Summary,
	}
}
