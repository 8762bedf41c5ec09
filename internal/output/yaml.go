package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/virtsh/internal/vm"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

// FormatEntries formats a domain listing as a YAML sequence.
func (f *YAMLFormatter) FormatEntries(entries []vm.Entry) (string, error) {
	if len(entries) == 0 {
		return "[]\n", nil
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal domains to YAML: %w", err)
	}

	return string(data), nil
}

// FormatInfo formats domain details as a YAML document.
func (f *YAMLFormatter) FormatInfo(info vm.Info) (string, error) {
	data, err := yaml.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to marshal domain %s to YAML: %w", info.Name, err)
	}

	return string(data), nil
}
