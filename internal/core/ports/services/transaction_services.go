package services

import (
	"context"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/dto"
)

// TransactionWriterSvc defines write operations for ledger transactions.
type TransactionWriterSvc interface {
	// CreateTransaction validates the entries and persists the transaction with them atomically.
	// creatorUserID may be nil when no authenticated actor exists.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID *string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for ledger transactions.
type TransactionReaderSvc interface {
	// GetTransaction retrieves one transaction with its entries.
	GetTransaction(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, each with its entries.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// SummarySvc defines reporting over posted transactions.
type SummarySvc interface {
	// GetSummary aggregates posted transactions for a calendar month.
	GetSummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionWriterSvc
	TransactionReaderSvc
	SummarySvc
}
