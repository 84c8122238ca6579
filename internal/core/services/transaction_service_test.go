package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/core/ports/events"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/core/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
	"github.com/SscSPs/hrms_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

var _ events.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishTransactionCreated(ctx context.Context, event events.TransactionCreated) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *MockPublisher
	service   portssvc.TransactionSvcFacade
	cash      int64
	revenue   int64
	expense   int64
	userID    string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.publisher = new(MockPublisher)
	suite.publisher.On("PublishTransactionCreated", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.userID = "user-1"

	suite.cash = suite.mustAccount("1000", domain.Asset)
	suite.revenue = suite.mustAccount("4000", domain.Revenue)
	suite.expense = suite.mustAccount("5000", domain.Expense)

	suite.service = suite.newService(suite.store)
}

func (suite *TransactionServiceTestSuite) newService(store *memory.Store) portssvc.TransactionSvcFacade {
	numberer := services.NewTransactionNumberer(store)
	poster, err := services.SelectPoster(suite.ctx, services.PostingModeAuto, store, numberer)
	suite.Require().NoError(err)
	return services.NewTransactionService(store, store, poster, services.WithEventPublisher(suite.publisher))
}

func (suite *TransactionServiceTestSuite) mustAccount(code string, t domain.AccountType) int64 {
	id, err := suite.store.SaveAccount(suite.ctx, domain.Account{Code: code, Name: code, Type: t, IsActive: true})
	suite.Require().NoError(err)
	return id
}

func amount(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (suite *TransactionServiceTestSuite) request(date string, status domain.TransactionStatus, entries ...dto.CreateEntryRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{Date: date, Status: status, Entries: entries}
}

func debit(account int64, v string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{AccountID: account, Debit: amount(v)}
}

func credit(account int64, v string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{AccountID: account, Credit: amount(v)}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestPostedTransactionAppearsInSummary() {
	txn, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "1000"), credit(suite.revenue, "1000")), &suite.userID)

	suite.Require().NoError(err)
	suite.NotZero(txn.ID)
	suite.Equal("TXN-000001", txn.Number)
	suite.Len(txn.Entries, 2)
	suite.Equal(&suite.userID, txn.CreatedBy)

	summary, err := suite.service.GetSummary(suite.ctx, 3, 2024)
	suite.Require().NoError(err)
	suite.Equal(1, summary.TotalTransactions)
	suite.True(amount("1000").Equal(summary.TotalAmount))
	suite.publisher.AssertCalled(suite.T(), "PublishTransactionCreated", mock.Anything,
		mock.MatchedBy(func(e events.TransactionCreated) bool { return e.TransactionID == txn.ID && e.EntryCount == 2 }))
}

func (suite *TransactionServiceTestSuite) TestUnbalancedWritesNothing() {
	_, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "1000"), credit(suite.revenue, "500")), nil)

	suite.ErrorIs(err, apperrors.ErrUnbalancedTransaction)
	suite.Equal(0, suite.store.TransactionCount())
	suite.publisher.AssertNotCalled(suite.T(), "PublishTransactionCreated", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestEntryWithBothSidesRejected() {
	_, err := suite.service.CreateTransaction(suite.ctx, suite.request("2024-03-10", domain.Posted,
		dto.CreateEntryRequest{AccountID: suite.cash, Debit: amount("100"), Credit: amount("100")}), nil)

	suite.ErrorIs(err, apperrors.ErrInvalidEntry)
	suite.Equal(0, suite.store.TransactionCount())
}

func (suite *TransactionServiceTestSuite) TestSplitCreditsTotal() {
	txn, err := suite.service.CreateTransaction(suite.ctx, suite.request("2024-03-10", domain.Posted,
		debit(suite.expense, "5000"), credit(suite.cash, "2000"), credit(suite.revenue, "3000")), nil)

	suite.Require().NoError(err)
	suite.True(amount("5000").Equal(txn.TotalAmount))
	suite.Len(txn.Entries, 3)
}

func (suite *TransactionServiceTestSuite) TestDraftExcludedFromSummary() {
	_, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-12", domain.Draft, debit(suite.cash, "70"), credit(suite.revenue, "70")), nil)
	suite.Require().NoError(err)
	_, err = suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-13", domain.Posted, debit(suite.cash, "30"), credit(suite.revenue, "30")), nil)
	suite.Require().NoError(err)

	summary, err := suite.service.GetSummary(suite.ctx, 3, 2024)
	suite.Require().NoError(err)
	suite.Equal(1, summary.TotalTransactions)
	suite.True(amount("30").Equal(summary.TotalAmount))
}

func (suite *TransactionServiceTestSuite) TestStatusDefaultsToDraft() {
	txn, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-12", "", debit(suite.cash, "1"), credit(suite.revenue, "1")), nil)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestSummaryIncludesLastDayOfMonth() {
	for _, date := range []string{"2024-02-01", "2024-02-29", "2024-03-01", "2024-01-31"} {
		_, err := suite.service.CreateTransaction(suite.ctx,
			suite.request(date, domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)
		suite.Require().NoError(err)
	}

	summary, err := suite.service.GetSummary(suite.ctx, 2, 2024)
	suite.Require().NoError(err)
	suite.Equal(2, summary.TotalTransactions)
	suite.True(amount("20").Equal(summary.TotalAmount))
}

func (suite *TransactionServiceTestSuite) TestSummaryIsIdempotent() {
	_, err := suite.service.CreateTransaction(suite.ctx, suite.request("2024-05-02", domain.Posted,
		dto.CreateEntryRequest{AccountID: suite.expense, CategoryID: int64Ptr(1), Debit: amount("40")},
		credit(suite.cash, "40")), nil)
	suite.Require().NoError(err)

	first, err := suite.service.GetSummary(suite.ctx, 5, 2024)
	suite.Require().NoError(err)
	second, err := suite.service.GetSummary(suite.ctx, 5, 2024)
	suite.Require().NoError(err)
	suite.Equal(first, second)
	suite.Equal(1, first.TotalTransactions)
}

func (suite *TransactionServiceTestSuite) TestSummaryEmptyMonth() {
	summary, err := suite.service.GetSummary(suite.ctx, 7, 2023)

	suite.Require().NoError(err)
	suite.Equal(0, summary.TotalTransactions)
	suite.True(summary.TotalAmount.IsZero())
	suite.Empty(summary.Categories)
}

func (suite *TransactionServiceTestSuite) TestSummaryInvalidPeriod() {
	_, err := suite.service.GetSummary(suite.ctx, 13, 2024)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.GetSummary(suite.ctx, 1, 99)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestUnknownAccountRejectedBeforeWrite() {
	_, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "10"), credit(9999, "10")), nil)

	suite.ErrorIs(err, apperrors.ErrInvalidEntry)
	suite.Contains(err.Error(), "9999")
	suite.Equal(0, suite.store.TransactionCount())
}

func (suite *TransactionServiceTestSuite) TestInactiveAccountRejected() {
	suite.Require().NoError(suite.store.SetAccountActive(suite.revenue, false))

	_, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)

	suite.ErrorIs(err, apperrors.ErrInvalidEntry)
}

func (suite *TransactionServiceTestSuite) TestInvalidDateAndStatus() {
	_, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("15/03/2024", domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-15", "void", debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestSequentialFallbackRollsBackOnEntryFailure() {
	store := memory.NewStore(memory.WithAtomicPosting(false))
	suite.store = store
	cash := suite.mustAccount("1000", domain.Asset)
	rev := suite.mustAccount("4000", domain.Revenue)
	svc := suite.newService(store)

	entryErr := errors.New("entries table unavailable")
	store.SetHooks(memory.Hooks{BeforeSaveEntries: func(int64, []domain.Entry) error { return entryErr }})

	_, err := svc.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(cash, "10"), credit(rev, "10")), nil)

	suite.ErrorIs(err, apperrors.ErrPartialWriteFailed)
	suite.ErrorIs(err, entryErr)
	suite.Equal(0, store.TransactionCount())
}

func (suite *TransactionServiceTestSuite) TestSequentialFallbackReportsOrphan() {
	store := memory.NewStore(memory.WithAtomicPosting(false))
	suite.store = store
	cash := suite.mustAccount("1000", domain.Asset)
	rev := suite.mustAccount("4000", domain.Revenue)
	svc := suite.newService(store)

	store.SetHooks(memory.Hooks{
		BeforeSaveEntries: func(int64, []domain.Entry) error { return errors.New("entries failed") },
		BeforeDelete:      func(int64) error { return errors.New("delete failed") },
	})

	_, err := svc.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(cash, "10"), credit(rev, "10")), nil)

	suite.ErrorIs(err, apperrors.ErrPartialWriteFailed)
	suite.Contains(err.Error(), "could not be rolled back")
	suite.Equal(1, store.TransactionCount())
}

func (suite *TransactionServiceTestSuite) TestNumberFallbackWhenSequenceFails() {
	suite.store.SetHooks(memory.Hooks{BeforeNextNumber: func() error { return errors.New("sequence missing") }})

	txn, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)

	suite.Require().NoError(err)
	suite.Regexp(`^TXN-\d+-[0-9a-f]{6}$`, txn.Number)
}

func (suite *TransactionServiceTestSuite) TestPublishFailureDoesNotFailPost() {
	publisher := new(MockPublisher)
	publisher.On("PublishTransactionCreated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	numberer := services.NewTransactionNumberer(suite.store)
	svc := services.NewTransactionService(suite.store, suite.store,
		services.NewAtomicPoster(suite.store, numberer), services.WithEventPublisher(publisher))

	txn, err := svc.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)

	suite.Require().NoError(err)
	suite.NotNil(txn)
	publisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransaction() {
	created, err := suite.service.CreateTransaction(suite.ctx,
		suite.request("2024-03-10", domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)
	suite.Require().NoError(err)

	got, err := suite.service.GetTransaction(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal(created.Number, got.Number)
	suite.Len(got.Entries, 2)

	_, err = suite.service.GetTransaction(suite.ctx, 12345)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.NotErrorIs(err, apperrors.ErrPersistenceFailed)
}

func (suite *TransactionServiceTestSuite) TestListTransactions() {
	for _, date := range []string{"2024-03-01", "2024-03-15", "2024-04-01"} {
		_, err := suite.service.CreateTransaction(suite.ctx,
			suite.request(date, domain.Posted, debit(suite.cash, "10"), credit(suite.revenue, "10")), nil)
		suite.Require().NoError(err)
	}

	txns, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	suite.Equal("2024-03-15", txns[0].Date.Format(domain.DateLayout))
	suite.Len(txns[0].Entries, 2)

	_, err = suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{StartDate: "2024-04-01", EndDate: "2024-03-01"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestStoreErrorsAreClassified() {
	ctx, cancel := context.WithTimeout(suite.ctx, time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := suite.service.GetSummary(ctx, 3, 2024)
	suite.ErrorIs(err, apperrors.ErrPersistenceFailed)
	suite.ErrorIs(err, context.DeadlineExceeded)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
