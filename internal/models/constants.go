package models

// Default buckets for transactions no rule claims. Uncategorizable credits
// land in other income, uncategorizable debits in other expense.
const (
	CategoryOtherIncome  = "Other Income"
	CategoryOtherExpense = "Other Expense"
)

// DefaultBucket returns the fallback category for a transaction side.
func DefaultBucket(isCredit bool) string {
	if isCredit {
		return CategoryOtherIncome
	}
	return CategoryOtherExpense
}
