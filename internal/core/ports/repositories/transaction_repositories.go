package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
)

// TransactionReader defines read operations for ledger transactions and their entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header. Returns apperrors.ErrNotFound if absent.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves transaction headers ordered by date desc, id desc.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// FindTransactionsInRange retrieves every header with the given status dated within [from, to].
	FindTransactionsInRange(ctx context.Context, from, to time.Time, status domain.TransactionStatus) ([]domain.Transaction, error)

	// FindEntriesByTransactionIDs retrieves entries grouped by their owning transaction.
	// Every requested id has a key in the result, possibly with an empty slice.
	FindEntriesByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Entry, error)
}

// AtomicTransactionWriter persists a header and its entries as one store-side unit.
type AtomicTransactionWriter interface {
	// CreateTransactionWithEntries writes everything or nothing and returns the new transaction id.
	CreateTransactionWithEntries(ctx context.Context, txn domain.Transaction, entries []domain.Entry) (int64, error)
}

// SequentialTransactionWriter exposes the individual writes used when no atomic path exists.
type SequentialTransactionWriter interface {
	// SaveTransactionHeader inserts the header row and returns its id.
	SaveTransactionHeader(ctx context.Context, txn domain.Transaction) (int64, error)

	// SaveEntries inserts the entries of an existing transaction.
	SaveEntries(ctx context.Context, transactionID int64, entries []domain.Entry) error

	// DeleteTransaction removes a header (and any entries) by id.
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// TransactionNumberSource hands out values from a store-side atomic sequence.
type TransactionNumberSource interface {
	NextTransactionNumber(ctx context.Context) (int64, error)
}

// PostingCapabilityProber reports which posting paths the store supports.
type PostingCapabilityProber interface {
	SupportsAtomicPosting(ctx context.Context) (bool, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	AtomicTransactionWriter
	SequentialTransactionWriter
	TransactionNumberSource
	PostingCapabilityProber
}
