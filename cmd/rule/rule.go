// Package rule manages custom categorization rules.
package rule

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
	"fjacquet/statement-ledger/internal/models"
)

// Cmd represents the rule command.
var Cmd = &cobra.Command{
	Use:   "rule",
	Short: "List, set or delete custom categorization rules",
	RunE:  listFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <description> <category>",
	Short: "Map a transaction description to a category",
	Long: `Record a custom rule: any transaction whose description exactly
matches (case-insensitively) gets the given category, overriding the
built-in rules. Setting a rule for an existing description replaces it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Service().SetCustomRule(args[0], args[1], models.RuleSourceManual); err != nil {
			return err
		}
		fmt.Printf("Rule saved: %q -> %q.\n", args[0], args[1])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <description>",
	Short: "Delete the custom rule for a description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Service().DeleteCustomRule(args[0]); err != nil {
			return err
		}
		fmt.Printf("Rule for %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(deleteCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	rules, err := root.Service().CustomRules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		fmt.Printf("%s -> %s (%s)\n", r.Description, r.Category, r.Source)
	}
	return nil
}
