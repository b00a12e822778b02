package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRuleMatches(t *testing.T) {
	food := CategoryRule{Category: "Food", Keywords: []string{"zomato", "swiggy"}, Type: RuleTypeDebit}
	salary := CategoryRule{Category: "Salary", Keywords: []string{"salary"}, Type: RuleTypeCredit}
	transfers := CategoryRule{Category: "Transfers", Keywords: []string{"neft"}, Type: RuleTypeAny}

	tests := []struct {
		name        string
		rule        CategoryRule
		description string
		isDebit     bool
		expected    bool
	}{
		{"keyword hit on debit", food, "ZOMATO ORDER 12345", true, true},
		{"case insensitive", food, "payment to Swiggy", true, true},
		{"debit rule rejects credit", food, "ZOMATO REFUND", false, false},
		{"credit rule rejects debit", salary, "SALARY ADVANCE", true, false},
		{"credit rule matches credit", salary, "FEB SALARY", false, true},
		{"any type matches both", transfers, "NEFT OUT", true, true},
		{"any type matches credit too", transfers, "NEFT IN", false, true},
		{"no keyword match", food, "UBER RIDE", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rule.Matches(tc.description, tc.isDebit))
		})
	}
}
