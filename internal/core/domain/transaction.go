package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates whether a transaction counts toward financial summaries.
type TransactionStatus string

const (
	Draft  TransactionStatus = "draft"
	Posted TransactionStatus = "posted"
)

// IsValid reports whether s is draft or posted.
func (s TransactionStatus) IsValid() bool {
	return s == Draft || s == Posted
}

// Transaction is the header row of a balanced set of entries and the unit of atomicity.
type Transaction struct {
	ID          int64             `json:"id"`
	Number      string            `json:"number"`
	Date        time.Time         `json:"date"`
	Description *string           `json:"description,omitempty"`
	Reference   *string           `json:"reference,omitempty"`
	Status      TransactionStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	AuditFields
	Entries []Entry `json:"entries,omitempty"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "no constraint",
// except Limit, which the service always sets.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *TransactionStatus
	Limit     int
	Offset    int
}
