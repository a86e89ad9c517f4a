package output

import (
	"fmt"
	"strings"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatYAML     Format = "yaml"
)

// Formatter renders a result set.
type Formatter interface {
	FormatRecords(records []core.BusinessRecord) (string, error)
}

// Headers lists the record columns in display order.
var Headers = []string{"Name", "Website", "Phone", "Emails", "Street Address", "Status"}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format. Color only
// applies to the table.
func NewFormatter(format Format, color bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Color: color}
	}
}

func recordCells(r core.BusinessRecord) []string {
	return []string{r.Name, r.Website, r.Phone, r.Emails, r.StreetAddress, r.Status}
}
