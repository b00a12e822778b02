package models

import "strings"

// RuleType constrains a built-in rule to one side of the ledger.
type RuleType string

const (
	RuleTypeDebit  RuleType = "debit"
	RuleTypeCredit RuleType = "credit"
	RuleTypeAny    RuleType = "any"
)

// CategoryRule is a built-in keyword heuristic. Rules are evaluated in
// declaration order and the first match wins.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
	Type     RuleType `yaml:"type"`
}

// Matches reports whether the rule applies to a transaction of the given
// type with the given description. Keyword comparison is a case-insensitive
// substring match.
func (r CategoryRule) Matches(description string, isDebit bool) bool {
	switch r.Type {
	case RuleTypeDebit:
		if !isDebit {
			return false
		}
	case RuleTypeCredit:
		if isDebit {
			return false
		}
	}
	return r.keywordMatch(description)
}

func (r CategoryRule) keywordMatch(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range r.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RuleSource records how a custom rule came to exist.
const (
	RuleSourceManual       = "manual"
	RuleSourceAISuggestion = "ai_suggestion"
)

// CustomRule maps an exact transaction description (case-insensitive) to a
// category. One rule exists per unique description; later writes overwrite.
type CustomRule struct {
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Source      string `yaml:"source"`
}

// Category is a user-visible bucket in the open-ended category set.
type Category struct {
	Name string `yaml:"name"`
}
