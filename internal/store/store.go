// Package store persists the ledger's collections as YAML files. Each
// collection is a key→value map (transactions by id, custom rules by
// lowercased description, categories by name) and callers never depend on
// iteration order.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"fjacquet/statement-ledger/internal/logging"
	"fjacquet/statement-ledger/internal/models"
)

const (
	transactionsFile = "transactions.yaml"
	customRulesFile  = "custom_rules.yaml"
	categoriesFile   = "categories.yaml"
)

// FileStore is a YAML-file-backed ledger store rooted at a data directory.
// All operations are safe for concurrent use within one process.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger logging.Logger
}

// NewFileStore creates a store rooted at dir, creating the directory when
// missing.
func NewFileStore(dir string, logger logging.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

type transactionsDoc struct {
	Transactions map[string]models.Transaction `yaml:"transactions"`
}

type customRulesDoc struct {
	Rules map[string]models.CustomRule `yaml:"rules"`
}

type categoriesDoc struct {
	Categories []models.Category `yaml:"categories"`
}

// GetTransaction looks up a transaction by id.
func (s *FileStore) GetTransaction(id string) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadTransactions()
	if err != nil {
		return models.Transaction{}, false, err
	}
	tx, ok := doc.Transactions[id]
	return tx, ok, nil
}

// PutTransaction inserts or replaces a transaction keyed by its id.
func (s *FileStore) PutTransaction(tx models.Transaction) error {
	return s.PutTransactions([]models.Transaction{tx})
}

// PutTransactions upserts a batch in one write.
func (s *FileStore) PutTransactions(transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadTransactions()
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		if tx.ID == "" {
			return fmt.Errorf("refusing to store transaction without id")
		}
		doc.Transactions[tx.ID] = tx
	}
	return s.save(transactionsFile, doc)
}

// DeleteTransaction removes a transaction by id. Missing ids are not an
// error.
func (s *FileStore) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadTransactions()
	if err != nil {
		return err
	}
	delete(doc.Transactions, id)
	return s.save(transactionsFile, doc)
}

// AllTransactions returns every stored transaction sorted by date then id
// for stable output.
func (s *FileStore) AllTransactions() ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}
	transactions := make([]models.Transaction, 0, len(doc.Transactions))
	for _, tx := range doc.Transactions {
		transactions = append(transactions, tx)
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date != transactions[j].Date {
			return transactions[i].Date < transactions[j].Date
		}
		return transactions[i].ID < transactions[j].ID
	})
	return transactions, nil
}

// ReplaceTransactions overwrites the stored set wholesale. Used by batch
// recategorization.
func (s *FileStore) ReplaceTransactions(transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := transactionsDoc{Transactions: make(map[string]models.Transaction, len(transactions))}
	for _, tx := range transactions {
		doc.Transactions[tx.ID] = tx
	}
	return s.save(transactionsFile, doc)
}

// GetCustomRule looks up a custom rule by its description key.
func (s *FileStore) GetCustomRule(description string) (models.CustomRule, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCustomRules()
	if err != nil {
		return models.CustomRule{}, false, err
	}
	rule, ok := doc.Rules[ruleKey(description)]
	return rule, ok, nil
}

// PutCustomRule inserts or overwrites the rule for its description. One
// rule exists per unique description.
func (s *FileStore) PutCustomRule(rule models.CustomRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCustomRules()
	if err != nil {
		return err
	}
	doc.Rules[ruleKey(rule.Description)] = rule
	return s.save(customRulesFile, doc)
}

// DeleteCustomRule removes the rule for a description.
func (s *FileStore) DeleteCustomRule(description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCustomRules()
	if err != nil {
		return err
	}
	delete(doc.Rules, ruleKey(description))
	return s.save(customRulesFile, doc)
}

// AllCustomRules returns every stored custom rule.
func (s *FileStore) AllCustomRules() ([]models.CustomRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCustomRules()
	if err != nil {
		return nil, err
	}
	rules := make([]models.CustomRule, 0, len(doc.Rules))
	for _, rule := range doc.Rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return strings.ToLower(rules[i].Description) < strings.ToLower(rules[j].Description)
	})
	return rules, nil
}

// DeleteCustomRulesByCategory removes every rule pointing at a category
// and returns how many were removed. Used by the category deletion cascade.
func (s *FileStore) DeleteCustomRulesByCategory(category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCustomRules()
	if err != nil {
		return 0, err
	}
	removed := 0
	for key, rule := range doc.Rules {
		if rule.Category == category {
			delete(doc.Rules, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(customRulesFile, doc)
}

// AllCategories returns the stored category set.
func (s *FileStore) AllCategories() ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCategories()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// PutCategory adds a category if not already present.
func (s *FileStore) PutCategory(category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCategories()
	if err != nil {
		return err
	}
	for _, existing := range doc.Categories {
		if existing.Name == category.Name {
			return nil
		}
	}
	doc.Categories = append(doc.Categories, category)
	return s.save(categoriesFile, doc)
}

// DeleteCategory removes a category from the set. Cascading effects on
// transactions and rules are the ledger service's responsibility.
func (s *FileStore) DeleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadCategories()
	if err != nil {
		return err
	}
	kept := doc.Categories[:0]
	for _, category := range doc.Categories {
		if category.Name != name {
			kept = append(kept, category)
		}
	}
	doc.Categories = kept
	return s.save(categoriesFile, doc)
}

// ClearAll wipes every collection.
func (s *FileStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, file := range []string{transactionsFile, customRulesFile, categoriesFile} {
		path := filepath.Join(s.dir, file)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", file, err)
		}
	}
	return nil
}

func ruleKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

func (s *FileStore) loadTransactions() (transactionsDoc, error) {
	doc := transactionsDoc{Transactions: make(map[string]models.Transaction)}
	err := s.load(transactionsFile, &doc)
	if doc.Transactions == nil {
		doc.Transactions = make(map[string]models.Transaction)
	}
	return doc, err
}

func (s *FileStore) loadCustomRules() (customRulesDoc, error) {
	doc := customRulesDoc{Rules: make(map[string]models.CustomRule)}
	err := s.load(customRulesFile, &doc)
	if doc.Rules == nil {
		doc.Rules = make(map[string]models.CustomRule)
	}
	return doc, err
}

func (s *FileStore) loadCategories() (categoriesDoc, error) {
	var doc categoriesDoc
	err := s.load(categoriesFile, &doc)
	return doc, err
}

// load reads a YAML collection file; a missing file is an empty collection.
func (s *FileStore) load(file string, out interface{}) error {
	path := filepath.Join(s.dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", file, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", file, err)
	}
	return nil
}

func (s *FileStore) save(file string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}
	path := filepath.Join(s.dir, file)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	s.logger.Debug("collection saved",
		logging.Field{Key: "file", Value: file},
		logging.Field{Key: "bytes", Value: len(data)})
	return nil
}
