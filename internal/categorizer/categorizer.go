// Package categorizer assigns a category to every transaction using, in
// order: exact-description custom rules, the built-in keyword rule table,
// and a default bucket per ledger side. An optional AI suggester proposes
// categories for review but never assigns them directly.
package categorizer

import (
	"strings"

	"fjacquet/statement-ledger/internal/models"
)

// RuleSet is the immutable snapshot of custom rules used for one batch.
// Keys are lowercased descriptions; rules and categories are read once per
// ingest call and applied uniformly to every file in the batch.
type RuleSet struct {
	custom map[string]models.CustomRule
}

// NewRuleSet builds a snapshot from a list of custom rules. Later
// duplicates overwrite earlier ones, matching store write semantics.
func NewRuleSet(customRules []models.CustomRule) RuleSet {
	custom := make(map[string]models.CustomRule, len(customRules))
	for _, rule := range customRules {
		custom[strings.ToLower(strings.TrimSpace(rule.Description))] = rule
	}
	return RuleSet{custom: custom}
}

// Lookup returns the custom rule for a description, if one exists.
func (rs RuleSet) Lookup(description string) (models.CustomRule, bool) {
	rule, ok := rs.custom[strings.ToLower(strings.TrimSpace(description))]
	return rule, ok
}

// Categorize is the pure categorization function. Precedence:
//  1. case-insensitive exact match against custom rule descriptions;
//  2. built-in rules in declaration order, honoring their type constraint;
//  3. the default bucket for the transaction's side.
func Categorize(tx *models.Transaction, rules RuleSet) string {
	if rule, ok := rules.Lookup(tx.Description); ok {
		return rule.Category
	}

	for _, rule := range builtinRules {
		if rule.Matches(tx.Description, tx.IsDebit()) {
			return rule.Category
		}
	}

	return models.DefaultBucket(tx.IsCredit())
}

// Apply categorizes every transaction in place.
func Apply(transactions []models.Transaction, rules RuleSet) {
	for i := range transactions {
		transactions[i].Category = Categorize(&transactions[i], rules)
	}
}

// Recategorize re-runs categorization over an existing transaction set,
// fully replacing each category and touching nothing else. It is invoked
// whenever rules or categories change.
func Recategorize(transactions []models.Transaction, rules RuleSet) int {
	changed := 0
	for i := range transactions {
		next := Categorize(&transactions[i], rules)
		if next != transactions[i].Category {
			transactions[i].Category = next
			changed++
		}
	}
	return changed
}
