package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/config"
	"github.com/ragzilla/GetOffMyNetwork/internal/infrastructure/ledger"
)

var ledgerPath string

// ledgerCmd groups trust ledger maintenance commands.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect and maintain the trust ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted trust records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := ledger.NewFileStore(resolveLedgerPath(cmd))
		l, err := store.Load()
		if err != nil {
			return err
		}

		if l.Len() == 0 {
			fmt.Println("Trust ledger is empty.")
			return nil
		}
		for _, record := range l.Records() {
			verdict := "clean"
			if record.Violator {
				if record.Permitted {
					verdict = "network, allowed"
				} else {
					verdict = "network, denied"
				}
			}
			fmt.Printf("%-52s %s\n", record.Identity, verdict)
			fmt.Printf("    %s\n", record.Content.Hex())
		}
		return nil
	},
}

var ledgerForgetCmd = &cobra.Command{
	Use:   "forget <identity>",
	Short: "Drop the trust record for a module identity",
	Long: `Remove a module's record from the trust ledger. The module will be
rescanned and, if it uses networking capabilities, re-prompted on the
next scan pass.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identity, err := modules.NewIdentity(args[0])
		if err != nil {
			return err
		}

		store := ledger.NewFileStore(resolveLedgerPath(cmd))
		l, err := store.Load()
		if err != nil {
			return err
		}

		if !l.Remove(identity) {
			return fmt.Errorf("no trust record for %s", identity)
		}
		if err := store.Save(l); err != nil {
			return err
		}
		slog.Info("trust record dropped", "module", identity)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerForgetCmd)

	ledgerCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "trust ledger file path")
}

func resolveLedgerPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("ledger") {
		return ledgerPath
	}
	cfg := &config.RuntimeConfig{LedgerPath: viper.GetString("ledger_path")}
	cfg.ApplyDefaults()
	return cfg.LedgerPath
}
