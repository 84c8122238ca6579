package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts.
// Balance is informational only; posting does not maintain it.
type Account struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	ParentID *int64          `json:"parentId,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"isActive"`
	AuditFields
}
