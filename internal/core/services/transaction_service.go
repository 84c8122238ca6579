package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
)

const (
	// DefaultListLimit is used when a listing does not specify a limit.
	DefaultListLimit = 50
	// MaxListLimit caps a single page.
	MaxListLimit = 500
)

// transactionService implements validation, posting and reporting for ledger transactions.
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionReader
	refRepo   portsrepo.ReferenceRepositoryFacade
	poster    Poster
	publisher events.Publisher
	now       func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithEventPublisher sets the publisher notified after each successful post.
func WithEventPublisher(p events.Publisher) TransactionServiceOption {
	return func(s *transactionService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service. The poster is chosen by the
// caller (see SelectPoster) so the posting guarantee is fixed at construction time.
func NewTransactionService(txnRepo portsrepo.TransactionReader, refRepo portsrepo.ReferenceRepositoryFacade, poster Poster, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:   txnRepo,
		refRepo:   refRepo,
		poster:    poster,
		publisher: events.NoopPublisher{},
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction implements portssvc.TransactionWriterSvc
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID *string) (*domain.Transaction, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted YYYY-MM-DD: %s", apperrors.ErrValidation, err.Error())
	}

	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: status must be draft or posted, got %q", apperrors.ErrValidation, status)
	}

	validated, err := ValidateEntries(req.ToEntryInputs())
	if err != nil {
		s.LogWarn(ctx, "Rejected transaction entries", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.checkAccounts(ctx, validated.Entries); err != nil {
		return nil, err
	}

	txn, err := s.poster.Post(ctx, PostRequest{
		Date:        date,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      status,
		CreatedBy:   creatorUserID,
		Validated:   validated,
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, txn)

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", txn.ID),
		slog.String("number", txn.Number),
		slog.String("status", string(txn.Status)),
		slog.String("total", txn.TotalAmount.String()),
		slog.String("posting_mode", string(s.poster.Mode())))
	return txn, nil
}

// checkAccounts rejects entries that reference unknown or inactive accounts. Reads only.
func (s *transactionService) checkAccounts(ctx context.Context, entries []domain.EntryInput) error {
	ids := make([]int64, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; !ok {
			seen[e.AccountID] = struct{}{}
			ids = append(ids, e.AccountID)
		}
	}

	accounts, err := s.refRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for transaction")
		return apperrors.Persistence("load accounts", err)
	}

	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %d does not exist", apperrors.ErrInvalidEntry, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %d is inactive", apperrors.ErrInvalidEntry, id)
		}
	}
	return nil
}

func (s *transactionService) publishCreated(ctx context.Context, txn *domain.Transaction) {
	event := events.TransactionCreated{
		TransactionID: txn.ID,
		Number:        txn.Number,
		Date:          txn.Date.Format(domain.DateLayout),
		Status:        string(txn.Status),
		TotalAmount:   txn.TotalAmount,
		EntryCount:    len(txn.Entries),
		CreatedBy:     txn.CreatedBy,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishTransactionCreated(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to publish transaction created event",
			slog.Int64("transaction_id", txn.ID),
			slog.String("error", err.Error()))
	}
}

// GetTransaction implements portssvc.TransactionReaderSvc
func (s *transactionService) GetTransaction(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.Int64("transaction_id", transactionID))
		return nil, apperrors.Persistence("find transaction", err)
	}

	entries, err := s.txnRepo.FindEntriesByTransactionIDs(ctx, []int64{transactionID})
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entries for transaction", slog.Int64("transaction_id", transactionID))
		return nil, apperrors.Persistence("find entries", err)
	}
	txn.Entries = entries[transactionID]
	return txn, nil
}

// ListTransactions implements portssvc.TransactionReaderSvc
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter, err := toTransactionFilter(params)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, apperrors.Persistence("list transactions", err)
	}

	if err := s.attachEntries(ctx, txns); err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Transactions listed", slog.Int("count", len(txns)))
	return txns, nil
}

func toTransactionFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{Limit: params.Limit, Offset: params.Offset}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		return filter, fmt.Errorf("%w: offset must not be negative", apperrors.ErrValidation)
	}

	if params.StartDate != "" {
		d, err := domain.ParseDate(params.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: startDate must be formatted YYYY-MM-DD", apperrors.ErrValidation)
		}
		filter.StartDate = &d
	}
	if params.EndDate != "" {
		d, err := domain.ParseDate(params.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: endDate must be formatted YYYY-MM-DD", apperrors.ErrValidation)
		}
		filter.EndDate = &d
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}

	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: status must be draft or posted", apperrors.ErrValidation)
		}
		filter.Status = &status
	}
	return filter, nil
}

func (s *transactionService) attachEntries(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	ids := make([]int64, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	entries, err := s.txnRepo.FindEntriesByTransactionIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entries for transactions", slog.Int("count", len(ids)))
		return apperrors.Persistence("find entries", err)
	}
	for i := range txns {
		txns[i].Entries = entries[txns[i].ID]
	}
	return nil
}

// GetSummary implements portssvc.SummarySvc
func (s *transactionService) GetSummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error) {
	from, to, err := domain.MonthRange(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	txns, err := s.txnRepo.FindTransactionsInRange(ctx, from, to, domain.Posted)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted transactions for summary",
			slog.Int("month", month), slog.Int("year", year))
		return nil, apperrors.Persistence("load transactions for summary", err)
	}

	if len(txns) == 0 {
		return BuildMonthlySummary(month, year, nil, nil, nil), nil
	}

	ids := make([]int64, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	entries, err := s.txnRepo.FindEntriesByTransactionIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for summary")
		return nil, apperrors.Persistence("load entries for summary", err)
	}

	categories, err := s.refRepo.ListCategories(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load categories for summary")
		return nil, apperrors.Persistence("load categories", err)
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	summary := BuildMonthlySummary(month, year, txns, entries, names)
	s.LogDebug(ctx, "Monthly summary generated",
		slog.Int("month", month),
		slog.Int("year", year),
		slog.Int("transactions", summary.TotalTransactions))
	return summary, nil
}
