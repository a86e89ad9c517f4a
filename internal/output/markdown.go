package output

import (
	"fmt"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// MarkdownFormatter renders records as a markdown table.
type MarkdownFormatter struct {
	// Order lists stored row indexes in display order. Nil keeps stored order.
	Order []int
}

// FormatRecords renders the result set as Markdown.
func (f *MarkdownFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	var sb strings.Builder
	sb.WriteString("| # | " + strings.Join(Headers, " | ") + " |\n")
	sb.WriteString("|---|" + strings.Repeat("------|", len(Headers)) + "\n")

	for _, i := range rowOrder(len(records), f.Order) {
		cells := recordCells(records[i])
		for j := range cells {
			cells[j] = escapeMarkdownCell(cells[j])
		}
		sb.WriteString(fmt.Sprintf("| %d | %s |\n", i+1, strings.Join(cells, " | ")))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", "\\|")
}
