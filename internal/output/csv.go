package output

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// CSVFormatter renders records as CSV with a header line.
type CSVFormatter struct{}

// FormatRecords renders the result set as CSV.
func (f *CSVFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	t := table.NewWriter()

	header := table.Row{}
	for _, h := range Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, r := range records {
		row := table.Row{}
		for _, cell := range recordCells(r) {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	return t.RenderCSV(), nil
}
