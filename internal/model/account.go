// Package model defines the core domain types shared across the application.
package model

import "strings"

// AccountType is the canonical classification of a GL account.
type AccountType string

const (
	// AccountTypeAsset represents asset accounts.
	AccountTypeAsset AccountType = "asset"
	// AccountTypeLiability represents liability accounts.
	AccountTypeLiability AccountType = "liability"
	// AccountTypeEquity represents equity accounts.
	AccountTypeEquity AccountType = "equity"
	// AccountTypeRevenue represents revenue/income accounts.
	AccountTypeRevenue AccountType = "revenue"
	// AccountTypeExpense represents expense accounts.
	AccountTypeExpense AccountType = "expense"
	// AccountTypeOther represents accounts whose type could not be classified.
	AccountTypeOther AccountType = "other"
)

// Account represents one chart-of-accounts entry. Reference data, fetched
// once per analysis session and never mutated.
type Account struct {
	ID       int64
	Code     string
	Name     string
	Type     AccountType
	IsActive bool
}

// Domain selects which side of the P&L an analysis looks at.
type Domain string

const (
	// DomainExpense analyzes expense accounts (signed debit-credit).
	DomainExpense Domain = "expense"
	// DomainRevenue analyzes revenue accounts (signed credit-debit).
	DomainRevenue Domain = "revenue"
	// DomainAll keeps both revenue and expense lines, each signed per its own rule.
	DomainAll Domain = "all"
)

// CanonicalAccountType maps the free-text type/kind/group labels seen in the
// chart of accounts to a canonical AccountType. The API has shipped "income",
// "revenues", "expenses", and localized variants over time, so matching is
// substring-based rather than exact.
func CanonicalAccountType(labels ...string) AccountType {
	for _, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l == "" {
			continue
		}
		switch {
		case strings.Contains(l, "revenue"), strings.Contains(l, "income"):
			return AccountTypeRevenue
		case strings.Contains(l, "expense"), strings.Contains(l, "expend"):
			return AccountTypeExpense
		case strings.Contains(l, "asset"):
			return AccountTypeAsset
		case strings.Contains(l, "liabilit"):
			return AccountTypeLiability
		case strings.Contains(l, "equity"), strings.Contains(l, "fund balance"):
			return AccountTypeEquity
		}
	}
	return AccountTypeOther
}

// SignedAmount computes the signed value of a debit/credit pair for a domain.
// Expense activity is debit-normal, revenue activity is credit-normal. Under
// DomainAll each line is signed per its own account type; non-P&L accounts
// contribute zero.
func SignedAmount(accountType AccountType, debit, credit float64, domain Domain) float64 {
	switch domain {
	case DomainExpense:
		if accountType != AccountTypeExpense {
			return 0
		}
		return debit - credit
	case DomainRevenue:
		if accountType != AccountTypeRevenue {
			return 0
		}
		return credit - debit
	case DomainAll:
		switch accountType {
		case AccountTypeExpense:
			return debit - credit
		case AccountTypeRevenue:
			return credit - debit
		default:
			return 0
		}
	}
	return 0
}
