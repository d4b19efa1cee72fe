package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
)

// YAMLFormatter formats a scan report as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// yamlReport is the serialized shape of a scan report.
type yamlReport struct {
	Pass            string       `yaml:"pass"`
	Started         string       `yaml:"started"`
	DurationMillis  int64        `yaml:"duration_ms"`
	NewlyDiscovered bool         `yaml:"newly_discovered"`
	Suspended       int          `yaml:"suspended_components"`
	Modules         []yamlModule `yaml:"modules"`
}

type yamlModule struct {
	Identity  string `yaml:"identity"`
	Hash      string `yaml:"hash"`
	Violator  bool   `yaml:"violator"`
	Permitted bool   `yaml:"permitted"`
}

// Format writes the scan report as YAML.
func (f *YAMLFormatter) Format(report *services.Report) error {
	doc := yamlReport{
		Pass:            report.PassID,
		Started:         report.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		DurationMillis:  report.Duration.Milliseconds(),
		NewlyDiscovered: report.NewlyDiscovered,
		Suspended:       report.Suspended,
		Modules:         make([]yamlModule, 0, len(report.Modules)),
	}
	for _, m := range report.Modules {
		doc.Modules = append(doc.Modules, yamlModule{
			Identity:  m.Identity,
			Hash:      m.Content,
			Violator:  m.Violator,
			Permitted: m.Permitted,
		})
	}

	data, err := yaml.MarshalWithOptions(doc, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("marshaling report to YAML: %w", err)
	}
	_, err = f.writer.Write(data)
	return err
}
