package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCreatedTopic is the default topic for TransactionCreated events.
const TransactionCreatedTopic = "accounting.transaction.created"

// TransactionCreated is emitted after a transaction and its entries were committed.
type TransactionCreated struct {
	TransactionID int64           `json:"transactionId"`
	Number        string          `json:"number"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	EntryCount    int             `json:"entryCount"`
	CreatedBy     *string         `json:"createdBy,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// Publisher delivers ledger events to downstream consumers.
type Publisher interface {
	PublishTransactionCreated(ctx context.Context, event TransactionCreated) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionCreated(context.Context, TransactionCreated) error {
	return nil
}
