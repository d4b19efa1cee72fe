package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ragzilla/GetOffMyNetwork/internal/application/ports"
	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/scan"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/components"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/config"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/ledger"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/modimage"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/output"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/prompt"
)

var (
	scanPluginDir string
	scanLedger    string
	scanFormat    string
	scanOutFile   string
	scanTrustAll  bool
	scanRules     []string
)

// scanCmd runs one scan pass over the plugin directory.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan third-party modules and enforce the trust ledger",
	Long: `Enumerate candidate modules under the plugin directory, reconcile them
against the trust ledger, and record operator decisions for anything
newly discovered.

Modules whose content is unchanged since a prior decision are not
rescanned; a changed binary loses any previously granted permission and
must be re-approved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runScanAction(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanPluginDir, "plugins", "p", "", "plugin directory to scan")
	scanCmd.Flags().StringVar(&scanLedger, "ledger", "", "trust ledger file path")
	scanCmd.Flags().StringVar(&scanFormat, "format", "", "output format: table, yaml, sarif")
	scanCmd.Flags().StringVarP(&scanOutFile, "output", "o", "", "output file path (default: stdout)")
	scanCmd.Flags().BoolVar(&scanTrustAll, "trust-all", false, "auto-grant all newly discovered modules (use with caution)")
	scanCmd.Flags().StringSliceVar(&scanRules, "rule", nil, "extra capability rule patterns (repeatable)")
}

// runScanAction implements the core logic for the scan command.
func runScanAction(ctx context.Context, cmd *cobra.Command) error {
	cfg := resolveConfig(cmd)

	slog.Info("scanning plugin directory", "dir", cfg.PluginDir, "ledger", cfg.LedgerPath)

	scanner := scan.NewScanner(cfg.Rules(), cfg.PluginRootSegment)
	guard := services.NewGuardService(
		modimage.NewDirectoryProvider(cfg.PluginDir),
		ledger.NewFileStore(cfg.LedgerPath),
		services.NewReconciler(scanner),
		services.NewEnforcer(components.NewRegistry()),
		buildPrompter(cfg),
	)

	report, err := guard.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan pass failed: %w", err)
	}

	writer, closeWriter, err := openOutput(scanOutFile)
	if err != nil {
		return err
	}
	defer closeWriter()

	formatter, err := output.NewFormatter(cfg.Format, writer)
	if err != nil {
		return err
	}
	if table, ok := formatter.(*output.TableFormatter); ok && scanOutFile != "" {
		table.EnableColor = false
	}
	return formatter.Format(report)
}

// resolveConfig merges the config file (via viper) with explicit flags;
// flags win.
func resolveConfig(cmd *cobra.Command) *config.RuntimeConfig {
	cfg := &config.RuntimeConfig{
		PluginDir:         viper.GetString("plugin_dir"),
		LedgerPath:        viper.GetString("ledger_path"),
		PluginRootSegment: viper.GetString("plugin_root_segment"),
		ExtraRules:        viper.GetStringSlice("extra_rules"),
		TrustAll:          viper.GetBool("trust_all"),
		Format:            viper.GetString("format"),
	}

	if cmd.Flags().Changed("plugins") {
		cfg.PluginDir = scanPluginDir
	}
	if cmd.Flags().Changed("ledger") {
		cfg.LedgerPath = scanLedger
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = scanFormat
	}
	if cmd.Flags().Changed("trust-all") {
		cfg.TrustAll = scanTrustAll
	}
	cfg.ExtraRules = append(cfg.ExtraRules, scanRules...)

	cfg.ApplyDefaults()
	return cfg
}

func buildPrompter(cfg *config.RuntimeConfig) ports.Prompter {
	if cfg.TrustAll {
		return prompt.StaticPrompter{Allow: true}
	}
	return prompt.NewTerminalPrompter()
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
