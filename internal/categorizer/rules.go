package categorizer

import "fjacquet/statement-ledger/internal/models"

// builtinRules is the static keyword rule table, evaluated in declaration
// order with first match winning. It is data, not logic: new merchants and
// aliases are appended to the relevant rule and nothing else changes.
var builtinRules = []models.CategoryRule{
	{Category: "Food", Type: models.RuleTypeDebit, Keywords: []string{
		"zomato", "swiggy", "restaurant", "cafe", "coffee", "pizza", "dominos", "mcdonald", "kfc", "eatery", "food",
	}},
	{Category: "Groceries", Type: models.RuleTypeDebit, Keywords: []string{
		"bigbasket", "blinkit", "grofers", "zepto", "supermarket", "grocery", "dmart", "kirana", "mart",
	}},
	{Category: "Transport", Type: models.RuleTypeDebit, Keywords: []string{
		"uber", "ola", "rapido", "metro", "irctc", "railway", "fuel", "petrol", "diesel", "toll", "parking",
	}},
	{Category: "Shopping", Type: models.RuleTypeDebit, Keywords: []string{
		"amazon", "flipkart", "myntra", "ajio", "nykaa", "mall", "store", "retail",
	}},
	{Category: "Utilities", Type: models.RuleTypeDebit, Keywords: []string{
		"electricity", "power bill", "water bill", "broadband", "airtel", "jio", "vodafone", "bsnl", "gas", "dth", "recharge",
	}},
	{Category: "Entertainment", Type: models.RuleTypeDebit, Keywords: []string{
		"netflix", "spotify", "hotstar", "prime video", "bookmyshow", "cinema", "movie",
	}},
	{Category: "Rent", Type: models.RuleTypeDebit, Keywords: []string{
		"rent", "lease",
	}},
	{Category: "Health", Type: models.RuleTypeDebit, Keywords: []string{
		"pharmacy", "hospital", "clinic", "apollo", "medplus", "diagnostic", "medical",
	}},
	{Category: "Insurance", Type: models.RuleTypeDebit, Keywords: []string{
		"insurance", "premium", "lic ", "policy",
	}},
	{Category: "Cash Withdrawal", Type: models.RuleTypeDebit, Keywords: []string{
		"atm", "cash wdl", "cash withdrawal", "withdrawal",
	}},
	{Category: "Fees & Charges", Type: models.RuleTypeDebit, Keywords: []string{
		"annual fee", "service charge", "penalty", "late fee", "gst", "sms charge",
	}},
	{Category: "Investments", Type: models.RuleTypeDebit, Keywords: []string{
		"mutual fund", "sip", "zerodha", "groww", "upstox", "ppf", "nps",
	}},
	{Category: "Salary", Type: models.RuleTypeCredit, Keywords: []string{
		"salary", "payroll", "wages",
	}},
	{Category: "Interest", Type: models.RuleTypeCredit, Keywords: []string{
		"interest", "int.cr", "int cr",
	}},
	{Category: "Refunds", Type: models.RuleTypeCredit, Keywords: []string{
		"refund", "reversal", "cashback",
	}},
	{Category: "Transfers", Type: models.RuleTypeAny, Keywords: []string{
		"neft", "imps", "rtgs", "transfer",
	}},
}

// BuiltinRules exposes a copy of the rule table for display surfaces.
func BuiltinRules() []models.CategoryRule {
	rules := make([]models.CategoryRule, len(builtinRules))
	copy(rules, builtinRules)
	return rules
}

// BuiltinCategories returns the category names the rule table can assign,
// in rule order, including the default buckets.
func BuiltinCategories() []string {
	seen := make(map[string]bool)
	var names []string
	for _, rule := range builtinRules {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			names = append(names, rule.Category)
		}
	}
	names = append(names, models.CategoryOtherIncome, models.CategoryOtherExpense)
	return names
}
