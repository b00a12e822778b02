// Package suggest asks the AI client for categories for unmatched
// transactions.
package suggest

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/statement-ledger/cmd/root"
	"fjacquet/statement-ledger/internal/categorizer"
	"fjacquet/statement-ledger/internal/models"
)

var apply bool

// Cmd represents the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest categories for transactions still in a default bucket",
	Long: `Send transactions that no rule matched to the configured AI model
and print its category suggestions. With --apply, accepted suggestions
become custom rules and the transactions are updated.

Requires LEDGER_AI_API_KEY to be set.`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().BoolVar(&apply, "apply", false, "Apply accepted suggestions to the ledger")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Config()
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("no AI API key configured, set LEDGER_AI_API_KEY")
	}

	transactions, err := root.Service().Transactions()
	if err != nil {
		return err
	}
	var items []categorizer.SuggestionRequest
	for _, tx := range transactions {
		if tx.Category != models.CategoryOtherIncome && tx.Category != models.CategoryOtherExpense {
			continue
		}
		items = append(items, categorizer.SuggestionRequest{
			ID:          tx.ID,
			Description: tx.Description,
			Type:        tx.Type(),
		})
	}
	if len(items) == 0 {
		fmt.Println("Nothing to suggest: every transaction already has a category.")
		return nil
	}

	suggester, err := categorizer.NewGeminiSuggester(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model, root.Log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := suggester.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("failed to close AI client")
		}
	}()

	allowed, err := root.Service().Categories()
	if err != nil {
		return err
	}
	suggestions, err := suggester.Suggest(cmd.Context(), items, allowed)
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Printf("%s -> %s (%s)\n", s.ID, s.SuggestedCategory, s.Reasoning)
	}

	if !apply {
		return nil
	}
	applied, err := root.Service().ApplySuggestions(suggestions)
	if err != nil {
		return err
	}
	fmt.Printf("Applied %d suggestions.\n", applied)
	return nil
}
