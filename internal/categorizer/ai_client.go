package categorizer

import (
	"context"
)

// SuggestionRequest is one transaction offered to the AI suggester.
type SuggestionRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"` // "debit" or "credit"
}

// Suggestion is the suggester's proposal for one transaction.
type Suggestion struct {
	ID                string `json:"id"`
	SuggestedCategory string `json:"suggestedCategory"`
	Reasoning         string `json:"reasoning"`
}

// Suggester proposes categories for a batch of transactions, restricted to
// an allowed category list. Implementations talk to an external service;
// the interface keeps the engine testable without network access.
type Suggester interface {
	Suggest(ctx context.Context, items []SuggestionRequest, allowedCategories []string) ([]Suggestion, error)
}

// FilterAllowed drops any suggestion whose category is not in the allowed
// list. The remote side is untrusted on this point regardless of how the
// prompt was phrased.
func FilterAllowed(suggestions []Suggestion, allowedCategories []string) []Suggestion {
	allowed := make(map[string]bool, len(allowedCategories))
	for _, category := range allowedCategories {
		allowed[category] = true
	}
	var kept []Suggestion
	for _, suggestion := range suggestions {
		if allowed[suggestion.SuggestedCategory] {
			kept = append(kept, suggestion)
		}
	}
	return kept
}
