package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// RowColumn is the sort key for stored row order.
const RowColumn = "#"

// ParseSortColumn maps a column name to its header. Case, spaces, dashes,
// and underscores are ignored. Empty, "#", and "row" mean stored order.
func ParseSortColumn(value string) (string, error) {
	key := columnKey(value)
	if key == "" || key == "#" || key == "row" {
		return RowColumn, nil
	}
	for _, h := range Headers {
		if columnKey(h) == key {
			return h, nil
		}
	}
	return "", fmt.Errorf("unsupported sort column: %s (valid: #, %s)", value, strings.Join(Headers, ", "))
}

func columnKey(value string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "_", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(value)))
}

// SortOrder returns the stored row indexes of records ordered by column,
// comparing cell text without case. Ties keep stored order.
func SortOrder(records []core.BusinessRecord, column string, desc bool) []int {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	col := slices.Index(Headers, column)
	if col >= 0 {
		slices.SortStableFunc(order, func(a, b int) int {
			cmp := strings.Compare(
				strings.ToLower(recordCells(records[a])[col]),
				strings.ToLower(recordCells(records[b])[col]),
			)
			if desc {
				return -cmp
			}
			return cmp
		})
	} else if desc {
		slices.Reverse(order)
	}
	return order
}

// WithOrder makes f render records in order. Formats that number rows keep
// each record's stored row number.
func WithOrder(f Formatter, order []int) Formatter {
	switch tf := f.(type) {
	case *TableFormatter:
		tf.Order = order
		return tf
	case *MarkdownFormatter:
		tf.Order = order
		return tf
	default:
		return &orderedFormatter{inner: f, order: order}
	}
}

type orderedFormatter struct {
	inner Formatter
	order []int
}

func (f *orderedFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	sorted := make([]core.BusinessRecord, 0, len(records))
	for _, i := range rowOrder(len(records), f.order) {
		sorted = append(sorted, records[i])
	}
	return f.inner.FormatRecords(sorted)
}

// rowOrder returns order when it covers n rows, else stored order.
func rowOrder(n int, order []int) []int {
	if len(order) == n {
		return order
	}
	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	return identity
}
