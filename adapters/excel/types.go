package excel

// RawTable is a spreadsheet as read from disk: the trimmed header row and the
// trimmed data rows, positionally aligned to Headers. Rows may be shorter or
// longer than Headers; the reader does not reconcile them.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
