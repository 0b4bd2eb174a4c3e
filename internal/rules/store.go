// Package rules stores user-defined keyword→category classification rules.
//
// Rules are the first classification layer: a case-insensitive substring
// match against a transaction description, first rule wins by insertion
// order. The store keeps an in-memory authoritative copy and mirrors every
// write to a flat file, one rule per line in "keyword||category" form.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

const fieldSeparator = "||"

// Store is a persisted, ordered keyword→category map.
type Store struct {
	path  string
	rules []model.Rule
	index map[string]int
	mu    sync.RWMutex
}

// NewStore loads the rule file at path, which need not exist yet.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, index: make(map[string]int)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, category, ok := strings.Cut(line, fieldSeparator)
		if !ok {
			continue
		}
		s.put(strings.ToLower(strings.TrimSpace(keyword)), strings.TrimSpace(category))
	}
	return s, nil
}

// Add inserts a rule, replacing the category of an existing keyword
// (last-write-wins), and persists the file.
func (s *Store) Add(keyword, category string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	category = strings.TrimSpace(category)
	if keyword == "" || category == "" {
		return fmt.Errorf("%w: rule keyword and category must be non-empty", common.ErrInvalidConfig)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(keyword, category)
	return s.save()
}

// Remove deletes the rule for keyword and persists the file.
func (s *Store) Remove(keyword string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[keyword]
	if !ok {
		return fmt.Errorf("rule %q: %w", keyword, common.ErrNotFound)
	}
	s.rules = append(s.rules[:idx], s.rules[idx+1:]...)
	delete(s.index, keyword)
	for i := idx; i < len(s.rules); i++ {
		s.index[s.rules[i].Keyword] = i
	}
	return s.save()
}

// Rules returns a copy of the rules in match order.
func (s *Store) Rules() []model.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Match returns the category of the first rule whose keyword is a substring
// of description, case-insensitively.
func (s *Store) Match(description string) (string, bool) {
	lowered := strings.ToLower(description)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rule := range s.rules {
		if strings.Contains(lowered, rule.Keyword) {
			return rule.Category, true
		}
	}
	return "", false
}

// put requires the lock (or single-threaded construction).
func (s *Store) put(keyword, category string) {
	if keyword == "" || category == "" {
		return
	}
	if idx, ok := s.index[keyword]; ok {
		s.rules[idx].Category = category
		return
	}
	s.index[keyword] = len(s.rules)
	s.rules = append(s.rules, model.Rule{Keyword: keyword, Category: category})
}

// save writes the rule file atomically. Requires the lock.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create rule directory: %w", err)
	}

	var sb strings.Builder
	for _, rule := range s.rules {
		sb.WriteString(rule.Keyword)
		sb.WriteString(fieldSeparator)
		sb.WriteString(rule.Category)
		sb.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write rule file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace rule file: %w", err)
	}
	return nil
}
