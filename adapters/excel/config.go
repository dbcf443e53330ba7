package excel

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet names the worksheet to read from workbooks; empty means the
	// first sheet in the workbook. Ignored for CSV files.
	Sheet string `json:"sheet"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{}
}
