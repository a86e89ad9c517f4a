package output

import (
	"encoding/json"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// JSONFormatter renders records with the same keys as the results file.
type JSONFormatter struct {
	Indent bool
}

// FormatRecords renders the result set as JSON.
func (f *JSONFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	if records == nil {
		records = []core.BusinessRecord{}
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
