package output

import (
	"fmt"
	"io"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
)

// Formatter renders a scan report to a writer.
type Formatter interface {
	Format(report *services.Report) error
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, writer io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(writer), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "sarif":
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: %v)", format, SupportedFormats())
	}
}

// SupportedFormats returns the available format names.
func SupportedFormats() []string {
	return []string{"table", "yaml", "sarif"}
}
