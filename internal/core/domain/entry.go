package domain

import "github.com/shopspring/decimal"

// EntryInput is one proposed line of a transaction before validation.
type EntryInput struct {
	AccountID   int64
	CategoryID  *int64
	VendorID    *int64
	Description *string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Entry is a persisted line item. Exactly one of Debit and Credit is positive.
type Entry struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transactionId"`
	AccountID     int64           `json:"accountId"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	VendorID      *int64          `json:"vendorId,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// Amount returns the nonzero side of the entry.
func (e Entry) Amount() decimal.Decimal {
	if e.Debit.IsPositive() {
		return e.Debit
	}
	return e.Credit
}
