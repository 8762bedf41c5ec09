package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/virtsh/internal/vm"
)

// JSONFormatter formats resources as JSON.
type JSONFormatter struct{}

// FormatEntries formats a domain listing as a JSON array.
func (f *JSONFormatter) FormatEntries(entries []vm.Entry) (string, error) {
	if len(entries) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal domains to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

// FormatInfo formats domain details as a JSON object.
func (f *JSONFormatter) FormatInfo(info vm.Info) (string, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal domain %s to JSON: %w", info.Name, err)
	}

	return string(data) + "\n", nil
}
