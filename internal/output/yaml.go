package output

import (
	"gopkg.in/yaml.v3"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

// YAMLFormatter renders records as a YAML sequence.
type YAMLFormatter struct{}

// FormatRecords renders the result set as YAML.
func (f *YAMLFormatter) FormatRecords(records []core.BusinessRecord) (string, error) {
	if records == nil {
		records = []core.BusinessRecord{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
