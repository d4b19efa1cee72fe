// Package config loads runtime configuration for scan passes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/scan"
)

// RuntimeConfig aggregates all runtime configuration. This is a value
// object that flows through the system.
type RuntimeConfig struct {
	// PluginDir is the directory tree scanned for candidate modules.
	PluginDir string `yaml:"plugin_dir"`

	// LedgerPath is the trust ledger document location.
	LedgerPath string `yaml:"ledger_path"`

	// PluginRootSegment gates which identities are eligible for scanning.
	PluginRootSegment string `yaml:"plugin_root_segment"`

	// ExtraRules are appended to the built-in capability rules.
	ExtraRules []string `yaml:"extra_rules"`

	// TrustAll auto-grants every newly discovered module without
	// prompting.
	TrustAll bool `yaml:"trust_all"`

	// Format selects the report output format.
	Format string `yaml:"format"`
}

// Load reads a config file. A missing file yields the zero config (caller
// applies defaults); a present but invalid file is an error.
func Load(path string) (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults applies defaults for zero values.
func (c *RuntimeConfig) ApplyDefaults() {
	if c.PluginDir == "" {
		c.PluginDir = "plugins"
	}
	if c.LedgerPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.LedgerPath = filepath.Join(home, ".gomn", "trust.cfg")
	}
	if c.PluginRootSegment == "" {
		c.PluginRootSegment = scan.PluginRootSegment
	}
	if c.Format == "" {
		c.Format = "table"
	}
}

// Rules returns the effective capability rule set: built-in rules plus any
// configured extras.
func (c *RuntimeConfig) Rules() scan.RuleSet {
	rules := scan.DefaultRules()
	for _, r := range c.ExtraRules {
		rules = append(rules, scan.Rule(r))
	}
	return rules
}
