// Package root contains the root command and the shared wiring every
// subcommand uses.
package root

import (
	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/internal/config"
	"fjacquet/statement-ledger/internal/ledger"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.GetLogger()

	cfg     *config.Config
	service *ledger.Service

	// DataDir overrides the configured data directory when set.
	DataDir string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-ledger",
		Short: "Ingest bank statements and maintain a categorized transaction ledger.",
		Long: `statement-ledger reads bank statements in PDF, CSV, XLSX, XLS and TXT
formats, extracts the transactions they contain, assigns each a stable
identity and a category, and keeps the result in a local ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			Log = config.ConfigureLogging(cfg)

			dir := cfg.Data.Dir
			if DataDir != "" {
				dir = DataDir
			}
			st, err := store.NewFileStore(dir, Log)
			if err != nil {
				return err
			}
			service = ledger.NewService(st, Log)
			return nil
		},
	}
)

// Init registers the root command's persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "Ledger data directory (overrides config)")
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// Service returns the ledger service built during PersistentPreRun.
func Service() *ledger.Service {
	return service
}
