// Package recategorize re-runs categorization over the stored ledger.
package recategorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
)

// Cmd represents the recategorize command.
var Cmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Re-apply categorization rules to every stored transaction",
	Long: `Run the current rule set, custom rules included, over the whole
ledger. Useful after adding or changing custom rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := root.Service().RecategorizeAll()
		if err != nil {
			return err
		}
		fmt.Printf("Recategorized %d transactions.\n", changed)
		return nil
	},
}
