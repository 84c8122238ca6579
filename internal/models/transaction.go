package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of accounting_transactions.
type Transaction struct {
	TransactionID     int64           `db:"id"`
	TransactionNumber string          `db:"transaction_number"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Description       *string         `db:"description"`
	Reference         *string         `db:"reference"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	AuditFields
}

// Entry is a row of accounting_entries. Exactly one of DebitAmount and CreditAmount is positive.
type Entry struct {
	EntryID       int64           `db:"id"`
	TransactionID int64           `db:"transaction_id"`
	AccountID     int64           `db:"account_id"`
	CategoryID    *int64          `db:"category_id"`
	VendorID      *int64          `db:"vendor_id"`
	Description   *string         `db:"description"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
}
