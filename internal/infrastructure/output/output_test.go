package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *services.Report {
	return &services.Report{
		PassID:          "0b5c2f55-8bb9-4a9f-b37b-0b27f1d7a111",
		StartTime:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:        125 * time.Millisecond,
		Suspended:       2,
		NewlyDiscovered: true,
		Modules: []services.ModuleVerdict{
			{Identity: "mod://plugins/allowed.wasm", Content: strings.Repeat("ab", 32), Violator: true, Permitted: true},
			{Identity: "mod://plugins/clean.wasm", Content: strings.Repeat("cd", 32)},
			{Identity: "mod://plugins/denied.wasm", Content: strings.Repeat("ef", 32), Violator: true},
		},
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false

	require.NoError(t, f.Format(sampleReport()))

	text := buf.String()
	assert.Contains(t, text, "mod://plugins/denied.wasm")
	assert.Contains(t, text, "network (suspended)")
	assert.Contains(t, text, "network (allowed)")
	assert.Contains(t, text, "clean")
	assert.Contains(t, text, "3 modules, 2 with networking capability, 2 components suspended")
}

func TestTableFormatter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false

	require.NoError(t, f.Format(&services.Report{PassID: "p"}))
	assert.Contains(t, buf.String(), "No modules found.")
}

func TestYAMLFormatter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(sampleReport()))

	var decoded struct {
		Pass      string `yaml:"pass"`
		Suspended int    `yaml:"suspended_components"`
		Modules   []struct {
			Identity string `yaml:"identity"`
			Violator bool   `yaml:"violator"`
		} `yaml:"modules"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0b5c2f55-8bb9-4a9f-b37b-0b27f1d7a111", decoded.Pass)
	assert.Equal(t, 2, decoded.Suspended)
	require.Len(t, decoded.Modules, 3)
	assert.True(t, decoded.Modules[0].Violator)
}

func TestSARIFFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSARIFFormatter(&buf).Format(sampleReport()))

	text := buf.String()
	assert.Contains(t, text, `"2.1.0"`)
	assert.Contains(t, text, "GetOffMyNetwork")
	assert.Contains(t, text, "network-capability")
	// Only violators become results.
	assert.Contains(t, text, "mod://plugins/denied.wasm")
	assert.Contains(t, text, "mod://plugins/allowed.wasm")
	assert.NotContains(t, text, "mod://plugins/clean.wasm uses")
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	for _, format := range SupportedFormats() {
		_, err := NewFormatter(format, &buf)
		assert.NoError(t, err, format)
	}

	_, err := NewFormatter("junit", &buf)
	assert.Error(t, err)
}
