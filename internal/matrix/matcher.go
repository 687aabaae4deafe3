// Package matrix aggregates signed journal lines into category-by-month
// receipt matrices using ordered matching rules.
package matrix

import (
	"strings"

	"github.com/parishworks/vestry/internal/model"
)

// Matcher evaluates category rules against fact lines. Matching runs one
// criterion at a time across all rules: every rule's account-id set first,
// then every rule's code prefixes, then every rule's name substrings. Within
// a criterion, rules are checked in configuration order and the first match
// ends the search.
type Matcher struct {
	rules      []model.CategoryRule
	accountIDs []map[int64]bool
}

// NewMatcher creates a matcher with the given ordered rules.
func NewMatcher(rules []model.CategoryRule) *Matcher {
	m := &Matcher{
		rules:      rules,
		accountIDs: make([]map[int64]bool, len(rules)),
	}
	for i, rule := range rules {
		ids := make(map[int64]bool, len(rule.AccountIDs))
		for _, id := range rule.AccountIDs {
			ids[id] = true
		}
		m.accountIDs[i] = ids
	}
	return m
}

// Match returns the first rule the line satisfies, or false when unmapped.
func (m *Matcher) Match(line model.FactLine) (model.CategoryRule, bool) {
	for i, rule := range m.rules {
		if m.accountIDs[i][line.AccountID] {
			return rule, true
		}
	}
	for _, rule := range m.rules {
		for _, prefix := range rule.CodePrefixes {
			if prefix != "" && strings.HasPrefix(line.AccountCode, prefix) {
				return rule, true
			}
		}
	}
	name := strings.ToLower(line.AccountName)
	for _, rule := range m.rules {
		for _, sub := range rule.NameIncludes {
			if sub != "" && strings.Contains(name, strings.ToLower(sub)) {
				return rule, true
			}
		}
	}
	return model.CategoryRule{}, false
}
