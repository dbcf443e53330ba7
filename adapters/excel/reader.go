package excel

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"companydir/internal"
	"companydir/internal/errors"

	"github.com/xuri/excelize/v2"
)

var logger = internal.DefaultLogger.Named("DataReader")

const (
	fileTypeXLSX = "xlsx"
	fileTypeCSV  = "csv"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	sheet    string
	fileType string // "xlsx", "csv" or "" when unsupported
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	return &DataReader{
		filePath: config.FilePath,
		sheet:    config.Sheet,
		fileType: detectFileType(config.FilePath),
	}
}

func detectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return fileTypeXLSX
	case ".csv":
		return fileTypeCSV
	default:
		return ""
	}
}

// ReadData reads the header row and data rows of the file. Failures to open
// or read the file are IO errors; content that cannot be parsed as the
// detected format, and unsupported extensions, are format errors.
func (r *DataReader) ReadData() (*RawTable, error) {
	if r.fileType == "" {
		return nil, errors.FormatError(fmt.Sprintf("unsupported file type %q (expected .xlsx or .csv)", filepath.Ext(r.filePath)), nil)
	}

	logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("cannot open %s file %s", strings.ToUpper(r.fileType), r.filePath), err)
	}
	defer file.Close()

	var rows [][]string
	switch r.fileType {
	case fileTypeCSV:
		rows, err = r.readCSVRows(file)
	default:
		rows, err = r.readExcelRows(file)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.FormatError(fmt.Sprintf("%s file %s has no header row", strings.ToUpper(r.fileType), r.filePath), nil)
	}

	return r.processRows(rows), nil
}

// readExcelRows reads every row of the configured sheet (or the first one)
func (r *DataReader) readExcelRows(file io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, errors.FormatError("failed to open Excel workbook", err)
	}
	defer f.Close()
	logger.Debug("Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.FormatError("Excel workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.FormatError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads CSV data, ignoring a leading UTF-8 byte order mark
func (r *DataReader) readCSVRows(file io.Reader) ([][]string, error) {
	br := bufio.NewReader(file)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.FormatError("failed to parse CSV file", err)
	}
	logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows splits the header row from the data rows, trimming every cell
func (r *DataReader) processRows(rows [][]string) *RawTable {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, cells)
	}

	logger.Info("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawTable{
		Headers: headers,
		Rows:    dataRows,
	}
}
