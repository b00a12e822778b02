// Package ledger is the service layer over the store: upserts from ingest
// batches, custom-rule management, category lifecycle and CSV export.
package ledger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"fjacquet/statement-ledger/internal/categorizer"
	"fjacquet/statement-ledger/internal/identity"
	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
	"fjacquet/statement-ledger/internal/store"
)

// Service coordinates the store with the categorizer.
type Service struct {
	store  *store.FileStore
	logger logging.Logger
}

// NewService creates a ledger service over a file store.
func NewService(st *store.FileStore, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{store: st, logger: logger}
}

// UpsertTransactions stores a batch keyed by identity hash. Re-ingesting
// the same statement produces identical ids, so duplicates collapse
// instead of accumulating.
func (s *Service) UpsertTransactions(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}
	if err := s.store.PutTransactions(transactions); err != nil {
		return fmt.Errorf("storing transactions: %w", err)
	}
	s.logger.WithField("count", len(transactions)).Info("transactions upserted")
	return nil
}

// ReplaceTransaction deletes the transaction with oldID and stores the
// edited one under a freshly computed identity hash. The new id is
// returned; any external references to the old id are orphaned.
func (s *Service) ReplaceTransaction(oldID string, edited models.Transaction) (string, error) {
	if err := edited.Validate(); err != nil {
		return "", err
	}
	if err := s.store.DeleteTransaction(oldID); err != nil {
		return "", err
	}
	edited.ID = identity.Hash(&edited)
	if err := s.store.PutTransaction(edited); err != nil {
		return "", err
	}
	return edited.ID, nil
}

// Transactions returns the stored ledger in date order.
func (s *Service) Transactions() ([]models.Transaction, error) {
	return s.store.AllTransactions()
}

// SetCustomRule records or overwrites the custom rule for a description.
func (s *Service) SetCustomRule(description, category, source string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("custom rule needs a description")
	}
	if category == "" {
		return fmt.Errorf("custom rule needs a category")
	}
	rule := models.CustomRule{Description: description, Category: category, Source: source}
	if err := s.store.PutCustomRule(rule); err != nil {
		return err
	}
	s.logger.WithFields(
		logging.Field{Key: "description", Value: description},
		logging.Field{Key: "category", Value: category},
	).Info("custom rule saved")
	return nil
}

// DeleteCustomRule removes the rule for a description.
func (s *Service) DeleteCustomRule(description string) error {
	return s.store.DeleteCustomRule(description)
}

// CustomRules returns all stored custom rules.
func (s *Service) CustomRules() ([]models.CustomRule, error) {
	return s.store.AllCustomRules()
}

// Categories returns the built-in categories merged with any user-added
// ones, sorted by name.
func (s *Service) Categories() ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, name := range categorizer.BuiltinCategories() {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	stored, err := s.store.AllCategories()
	if err != nil {
		return nil, err
	}
	for _, category := range stored {
		if _, ok := seen[category.Name]; !ok {
			seen[category.Name] = struct{}{}
			names = append(names, category.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// AddCategory records a user-defined category.
func (s *Service) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category needs a name")
	}
	return s.store.PutCategory(models.Category{Name: name})
}

// DeleteCategory removes a category and cascades: transactions in it fall
// back to their default bucket and custom rules pointing at it are
// removed.
func (s *Service) DeleteCategory(name string) error {
	transactions, err := s.store.AllTransactions()
	if err != nil {
		return err
	}
	var moved []models.Transaction
	for _, tx := range transactions {
		if tx.Category == name {
			tx.Category = models.DefaultBucket(tx.IsCredit())
			moved = append(moved, tx)
		}
	}
	if len(moved) > 0 {
		if err := s.store.PutTransactions(moved); err != nil {
			return err
		}
	}
	removedRules, err := s.store.DeleteCustomRulesByCategory(name)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCategory(name); err != nil {
		return err
	}
	s.logger.WithFields(
		logging.Field{Key: "category", Value: name},
		logging.Field{Key: "transactions_moved", Value: len(moved)},
		logging.Field{Key: "rules_removed", Value: removedRules},
	).Info("category deleted")
	return nil
}

// RecategorizeAll re-runs categorization over the stored ledger with the
// current rule set and returns how many transactions changed category.
func (s *Service) RecategorizeAll() (int, error) {
	transactions, err := s.store.AllTransactions()
	if err != nil {
		return 0, err
	}
	rules, err := s.ruleSet()
	if err != nil {
		return 0, err
	}
	changed := categorizer.Recategorize(transactions, rules)
	if changed == 0 {
		return 0, nil
	}
	if err := s.store.ReplaceTransactions(transactions); err != nil {
		return 0, err
	}
	return changed, nil
}

// ApplySuggestions accepts AI category suggestions: each becomes a custom
// rule (source ai_suggestion) and the suggested transaction is updated.
// Suggestions outside the allowed category set are discarded.
func (s *Service) ApplySuggestions(suggestions []categorizer.Suggestion) (int, error) {
	allowed, err := s.Categories()
	if err != nil {
		return 0, err
	}
	accepted := categorizer.FilterAllowed(suggestions, allowed)
	if dropped := len(suggestions) - len(accepted); dropped > 0 {
		s.logger.WithField("dropped", dropped).Warn("discarding suggestions with unknown categories")
	}
	applied := 0
	for _, suggestion := range accepted {
		tx, ok, err := s.store.GetTransaction(suggestion.ID)
		if err != nil {
			return applied, err
		}
		if !ok {
			continue
		}
		if err := s.SetCustomRule(tx.Description, suggestion.SuggestedCategory, models.RuleSourceAISuggestion); err != nil {
			return applied, err
		}
		tx.Category = suggestion.SuggestedCategory
		if err := s.store.PutTransaction(tx); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (s *Service) ruleSet() (categorizer.RuleSet, error) {
	custom, err := s.store.AllCustomRules()
	if err != nil {
		return categorizer.RuleSet{}, err
	}
	return categorizer.NewRuleSet(custom), nil
}

// RuleSet snapshots the current custom rules for a batch run.
func (s *Service) RuleSet() (categorizer.RuleSet, error) {
	return s.ruleSet()
}

// ExportCSV writes the stored ledger as CSV with a fixed header row.
func (s *Service) ExportCSV(w io.Writer) error {
	transactions, err := s.store.AllTransactions()
	if err != nil {
		return err
	}
	rows := make([]*models.Transaction, len(transactions))
	for i := range transactions {
		rows[i] = &transactions[i]
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
