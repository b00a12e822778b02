// Package ingest handles batch ingestion of statement files.
package ingest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
	"fjacquet/statement-ledger/internal/engine"
	"fjacquet/statement-ledger/internal/logging"
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Parse statement files and add their transactions to the ledger",
	Long: `Parse up to five statement files in one batch. Each file is processed
independently: one failing file does not stop the others. Encrypted PDFs
prompt for a password on the terminal, with one retry on a wrong password.

Example:
  statement-ledger ingest january.pdf february.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	logger := root.Log
	logger.WithField("files", len(args)).Info("ingest started")

	if limit := root.Config().Ingest.MaxBatchSize; limit > 0 && len(args) > limit {
		return fmt.Errorf("batch of %d files exceeds the configured limit of %d", len(args), limit)
	}

	files := make([]engine.FileInput, 0, len(args))
	var opened []*os.File
	defer func() {
		for _, f := range opened {
			if cerr := f.Close(); cerr != nil {
				logger.WithError(cerr).Warn("failed to close input file")
			}
		}
	}()
	for _, path := range args {
		f, err := os.Open(path) // #nosec G304 -- CLI tool operates on user-provided paths
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		opened = append(opened, f)
		files = append(files, engine.FileInput{Name: path, Reader: f})
	}

	rules, err := root.Service().RuleSet()
	if err != nil {
		return err
	}

	eng := engine.New(rules, logger)
	result, err := eng.Ingest(cmd.Context(), files, promptPassword, printStatus)
	if err != nil {
		return err
	}

	if err := root.Service().UpsertTransactions(result.Transactions); err != nil {
		return err
	}

	fmt.Printf("Ingested %d transactions from %d files", len(result.Transactions), len(args))
	if len(result.Skipped) > 0 {
		fmt.Printf(", skipped %d unsupported", len(result.Skipped))
	}
	if len(result.Errors) > 0 {
		fmt.Printf(", %d failed", len(result.Errors))
	}
	fmt.Println(".")
	for _, fileErr := range result.Errors {
		logger.WithField("file", fileErr.File).WithError(fileErr.Err).Error("file failed")
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d files failed", len(result.Errors), len(args))
	}
	return nil
}

// promptPassword reads a password for an encrypted file from stdin.
// Returning an error cancels that file only.
func promptPassword(ctx context.Context, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Printf("Password for %s: ", fileName)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printStatus(event engine.Event) {
	root.Log.WithFields(
		logging.Field{Key: "file", Value: event.File},
		logging.Field{Key: "status", Value: event.Status},
	).Debug("status update")
	switch event.Status {
	case engine.StatusSuccess:
		if event.Message != "" {
			fmt.Printf("%s: %s\n", event.File, event.Message)
		} else {
			fmt.Printf("%s: %d transactions\n", event.File, event.Count)
		}
	case engine.StatusSkipped:
		fmt.Printf("%s: skipped (unsupported format)\n", event.File)
	case engine.StatusError:
		fmt.Printf("%s: error: %s\n", event.File, event.Message)
	}
}
