// Package output provides formatters for scan pass reports.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter formats a scan report as a human-readable table.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w, EnableColor: true}
}

func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the scan report as a table.
//
//nolint:errcheck // best-effort terminal output
func (f *TableFormatter) Format(report *services.Report) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Scan pass: %s\n", f.colorize(report.PassID, colorBold))
	fmt.Fprintf(f.writer, "Started:  %s\n", report.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(report.Modules) == 0 {
		fmt.Fprintln(f.writer, "No modules found.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Modules:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	violators := 0
	for _, m := range report.Modules {
		status := f.colorize("clean", colorGreen)
		if m.Violator {
			violators++
			if m.Permitted {
				status = f.colorize("network (allowed)", colorYellow)
			} else {
				status = f.colorize("network (suspended)", colorRed)
			}
		}
		fmt.Fprintf(f.writer, "  %-52s %s\n", m.Identity, status)
		fmt.Fprintf(f.writer, "    %s\n", f.colorize(shortDigest(m.Content), colorGray))
	}

	fmt.Fprintln(f.writer)
	fmt.Fprintf(f.writer, "%d modules, %d with networking capability, %d components suspended\n",
		len(report.Modules), violators, report.Suspended)
	if report.NewlyDiscovered {
		fmt.Fprintln(f.writer, f.colorize("New networking modules were discovered this run.", colorYellow))
	}
	return nil
}

func shortDigest(hex string) string {
	if len(hex) <= 16 {
		return hex
	}
	return hex[:16] + "…"
}
