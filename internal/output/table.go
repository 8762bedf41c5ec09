package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jbweber/virtsh/internal/vm"
)

const (
	// StateRunning and StateShutOff are the listing's two states.
	StateRunning = "running"
	StateShutOff = "shut off"

	// rowFormat lays out ID, Name, and State in fixed-width columns.
	rowFormat = "%-5s %-20s %-8s\n"
	ruleWidth = 40
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row and rule.
	NoHeaders bool
}

// FormatEntries formats a domain listing as a fixed-width table.
func (f *TableFormatter) FormatEntries(entries []vm.Entry) (string, error) {
	var buf strings.Builder

	if !f.NoHeaders {
		fmt.Fprintf(&buf, rowFormat, "ID", "Name", "State")
		buf.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	}

	for _, e := range entries {
		fmt.Fprintf(&buf, rowFormat, e.ID, e.Name, EntryState(e))
	}

	return buf.String(), nil
}

// FormatInfo formats domain details as aligned "Field: value" lines.
func (f *TableFormatter) FormatInfo(info vm.Info) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', 0)

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		if label != "" {
			label += ":"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", label, value)
	}

	row("Id", info.ID)
	row("Name", info.Name)
	row("UUID", info.UUID)
	row("Type", info.Type)
	row("OS Type", info.OSType)
	row("Arch", info.Arch)
	row("State", info.State)
	row("CPU(s)", fmt.Sprintf("%d", info.VCPUs))
	row("Memory", fmt.Sprintf("%d MiB", info.MemoryMiB))
	for i, d := range info.Disks {
		label := ""
		if i == 0 {
			label = "Disks"
		}
		row(label, d)
	}
	for i, iface := range info.Interfaces {
		label := ""
		if i == 0 {
			label = "Interfaces"
		}
		row(label, iface)
	}

	_ = w.Flush()
	return buf.String(), nil
}

// EntryState renders a listing entry's state.
func EntryState(e vm.Entry) string {
	if e.Active {
		return StateRunning
	}
	return StateShutOff
}
