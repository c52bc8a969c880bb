// Package report formats the per-package outcomes of a run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/agentflare-ai/readme-sync/internal/readme"
)

// Format types for output.
type Format string

const (
	// FormatText prints one "name: status" line per package.
	FormatText Format = "text"
	// FormatTable renders a table.
	FormatTable Format = "table"
	// FormatJSON renders a JSON array.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML sequence.
	FormatYAML Format = "yaml"
)

// ParseFormat converts string to Format with validation. An empty string
// selects auto-detection.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatText, FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: text, table, json, yaml", s)
	}
}

// DetectFormat picks table output for terminals and text otherwise, unless
// an explicit format is given.
func DetectFormat(explicit Format, out io.Writer) Format {
	if explicit != "" {
		return explicit
	}
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatTable
	}
	return FormatText
}

// Entry is one row of a report.
type Entry struct {
	Package string `json:"package" yaml:"package"`
	Status  string `json:"status" yaml:"status"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Entries converts outcomes into report rows, keeping their order.
func Entries(outcomes []readme.Outcome) []Entry {
	entries := make([]Entry, 0, len(outcomes))
	for _, o := range outcomes {
		e := Entry{Package: o.Package, Status: o.Status()}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		entries = append(entries, e)
	}
	return entries
}

// Write renders outcomes to w in the given format.
func Write(w io.Writer, format Format, outcomes []readme.Outcome) error {
	entries := Entries(outcomes)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(entries, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatTable:
		return writeTable(w, entries)
	default:
		return writeText(w, entries)
	}
}

func writeText(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		line := fmt.Sprintf("%s: %s", e.Package, e.Status)
		if e.Error != "" {
			line += " (" + e.Error + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, entries []Entry) error {
	table := tablewriter.NewTable(w)
	table.Header("Package", "Status", "Error")
	for _, e := range entries {
		if err := table.Append(e.Package, e.Status, e.Error); err != nil {
			return err
		}
	}
	return table.Render()
}
