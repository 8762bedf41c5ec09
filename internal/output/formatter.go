// Package output renders domain listings and domain details for the shell.
//
// The table format reproduces the classic fixed-width listing. YAML and
// JSON carry the same fields for scripting.
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jbweber/virtsh/internal/vm"
)

// Format names an output rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formatter renders what list and info print.
type Formatter interface {
	FormatEntries(entries []vm.Entry) (string, error)
	FormatInfo(info vm.Info) (string, error)
}

// Options selects and tunes a Formatter.
type Options struct {
	Format Format
	// NoHeaders drops the table header row and rule. Ignored by other formats.
	NoHeaders bool
}

var formats = map[Format]func(Options) Formatter{
	FormatTable: func(o Options) Formatter { return &TableFormatter{NoHeaders: o.NoHeaders} },
	FormatYAML:  func(Options) Formatter { return &YAMLFormatter{} },
	FormatJSON:  func(Options) Formatter { return &JSONFormatter{} },
}

// NewFormatter returns the Formatter for opts.Format. An empty format
// means table.
func NewFormatter(opts Options) (Formatter, error) {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	build, ok := formats[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q (supported: %s)", opts.Format, supported())
	}
	return build(opts), nil
}

// ValidateFormat reports whether format names a known Formatter.
func ValidateFormat(format string) error {
	if _, ok := formats[Format(format)]; !ok {
		return fmt.Errorf("invalid format %q (supported: %s)", format, supported())
	}
	return nil
}

func supported() string {
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
