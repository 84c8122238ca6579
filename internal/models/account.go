package models

import "github.com/shopspring/decimal"

// Account is a row of the accounts table.
type Account struct {
	AccountID   int64           `db:"id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	ParentID    *int64          `db:"parent_id"` // Nullable
	Balance     decimal.Decimal `db:"balance"`
	IsActive    bool            `db:"is_active"`
	AuditFields
}
