// Package export writes the ledger to CSV.
package export

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
)

var outputPath string

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV",
	Long: `Write every stored transaction to CSV, sorted by date. With no
--output flag the CSV goes to stdout.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output CSV file (default stdout)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if outputPath == "" {
		return root.Service().ExportCSV(os.Stdout)
	}
	f, err := os.Create(outputPath) // #nosec G304 -- CLI tool writes to user-provided paths
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("failed to close output file")
		}
	}()
	if err := root.Service().ExportCSV(f); err != nil {
		return err
	}
	root.Log.WithField("output", outputPath).Info("ledger exported")
	return nil
}
