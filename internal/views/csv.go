package views

import (
	"errors"
	"strings"
)

// CSVFilename is the download name of the reports export
const CSVFilename = "receipts_report.csv"

// CSVHeader is the fixed, unquoted first line of the export
var CSVHeader = []string{"Seller Name", "Category", "Receipt Date", "Upload Date", "Total Amount"}

// ErrNothingToExport is returned when the visible table has no data rows
var ErrNothingToExport = errors.New("no rows to export")

// ExportCSV writes the header plus one line per row. Every data cell is
// double-quoted, embedded quotes doubled, so the file is N+1 lines for N rows.
func ExportCSV(rows []ReceiptRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(CSVHeader, ","))
	sb.WriteByte('\n')

	for _, row := range rows {
		cells := row.Cells()
		for i, cell := range cells {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(strings.TrimSpace(cell), `"`, `""`))
			sb.WriteByte('"')
		}
		sb.WriteByte('\n')
	}

	return []byte(sb.String()), nil
}
