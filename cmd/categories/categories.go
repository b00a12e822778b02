// Package categories manages the category set.
package categories

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
)

// Cmd represents the categories command.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List, add or delete categories",
	RunE:  listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a user-defined category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Service().AddCategory(args[0]); err != nil {
			return err
		}
		fmt.Printf("Added category %q.\n", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category, moving its transactions to the default bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Service().DeleteCategory(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted category %q.\n", args[0])
		return nil
	},
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(deleteCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	names, err := root.Service().Categories()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
