package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// TableFormatter renders records as a terminal table. With Color set, each
// row gets the background of its status.
type TableFormatter struct {
	Color bool

	// Order lists stored row indexes in display order. Nil keeps stored order.
	Order []int
}

// FormatRecords renders the result set as a table.
func (f *TableFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	if len(records) == 0 {
		return "No saved results.", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	for _, h := range Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, i := range rowOrder(len(records), f.Order) {
		row := table.Row{i + 1}
		for _, cell := range recordCells(records[i]) {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	if f.Color {
		t.SetRowPainter(table.RowPainter(func(row table.Row) text.Colors {
			if len(row) == 0 {
				return nil
			}
			status, _ := row[len(row)-1].(string)
			return StatusColors(status)
		}))
	}

	return t.Render(), nil
}

// StatusColors maps a stored status label to the terminal colors nearest its
// palette entry. Only exact labels are colored; anything else gets the
// default white row, as on the web page.
func StatusColors(label string) text.Colors {
	switch core.Status(label) {
	case core.StatusContacted:
		return text.Colors{text.BgHiCyan, text.FgBlack}
	case core.StatusSignedUp:
		return text.Colors{text.BgHiGreen, text.FgBlack}
	case core.StatusDeclinedServices:
		return text.Colors{text.BgHiRed, text.FgBlack}
	default:
		return text.Colors{text.BgHiWhite, text.FgBlack}
	}
}
