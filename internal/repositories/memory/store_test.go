package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func header(number, date string, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{Number: number, Date: day(date), Status: status, TotalAmount: decimal.NewFromInt(10)}
}

func lines() []domain.Entry {
	return []domain.Entry{
		{AccountID: 1, Debit: decimal.NewFromInt(10)},
		{AccountID: 2, Credit: decimal.NewFromInt(10)},
	}
}

func TestStore_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	id, err := s.CreateTransactionWithEntries(ctx, header("TXN-000001", "2024-03-15", domain.Posted), lines())
	require.NoError(t, err)

	got, err := s.FindTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "TXN-000001", got.Number)

	entries, err := s.FindEntriesByTransactionIDs(ctx, []int64{id, 999})
	require.NoError(t, err)
	assert.Len(t, entries[id], 2)
	assert.Equal(t, id, entries[id][0].TransactionID)
	assert.Contains(t, entries, int64(999))
	assert.Empty(t, entries[999])
}

func TestStore_FindTransactionByID_NotFound(t *testing.T) {
	_, err := memory.NewStore().FindTransactionByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_DuplicateNumber(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := s.SaveTransactionHeader(ctx, header("TXN-000001", "2024-03-15", domain.Draft))
	require.NoError(t, err)
	_, err = s.SaveTransactionHeader(ctx, header("TXN-000001", "2024-03-16", domain.Draft))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_AtomicPostingDisabled(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore(memory.WithAtomicPosting(false))

	ok, err := s.SupportsAtomicPosting(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.CreateTransactionWithEntries(ctx, header("TXN-000001", "2024-03-15", domain.Posted), lines())
	assert.ErrorIs(t, err, memory.ErrAtomicPostingUnsupported)
	assert.Equal(t, 0, s.TransactionCount())
}

func TestStore_AtomicEntryFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("entries rejected")
	s := memory.NewStore(memory.WithHooks(memory.Hooks{
		BeforeSaveEntries: func(int64, []domain.Entry) error { return boom },
	}))

	_, err := s.CreateTransactionWithEntries(ctx, header("TXN-000001", "2024-03-15", domain.Posted), lines())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.TransactionCount())
}

func TestStore_ListTransactions_OrderAndFilter(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	for _, h := range []domain.Transaction{
		header("TXN-000001", "2024-03-01", domain.Posted),
		header("TXN-000002", "2024-03-20", domain.Draft),
		header("TXN-000003", "2024-03-20", domain.Posted),
		header("TXN-000004", "2024-04-02", domain.Posted),
	} {
		_, err := s.CreateTransactionWithEntries(ctx, h, lines())
		require.NoError(t, err)
	}

	all, err := s.ListTransactions(ctx, domain.TransactionFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"TXN-000004", "TXN-000003", "TXN-000002", "TXN-000001"},
		[]string{all[0].Number, all[1].Number, all[2].Number, all[3].Number})

	posted := domain.Posted
	start, end := day("2024-03-01"), day("2024-03-31")
	march, err := s.ListTransactions(ctx, domain.TransactionFilter{StartDate: &start, EndDate: &end, Status: &posted, Limit: 50})
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, "TXN-000003", march[0].Number)

	page, err := s.ListTransactions(ctx, domain.TransactionFilter{Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	inRange, err := s.FindTransactionsInRange(ctx, start, end, domain.Posted)
	require.NoError(t, err)
	assert.Len(t, inRange, 2)
}

func TestStore_DeleteRemovesEntries(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	id, err := s.SaveTransactionHeader(ctx, header("TXN-000001", "2024-03-15", domain.Draft))
	require.NoError(t, err)
	require.NoError(t, s.SaveEntries(ctx, id, lines()))

	require.NoError(t, s.DeleteTransaction(ctx, id))
	entries, err := s.FindEntriesByTransactionIDs(ctx, []int64{id})
	require.NoError(t, err)
	assert.Empty(t, entries[id])
	assert.ErrorIs(t, s.DeleteTransaction(ctx, id), apperrors.ErrNotFound)
}

func TestStore_Accounts(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	id, err := s.SaveAccount(ctx, domain.Account{Code: "1000", Name: "Cash", Type: domain.Asset, IsActive: true})
	require.NoError(t, err)
	_, err = s.SaveAccount(ctx, domain.Account{Code: "1000", Name: "Cash again", Type: domain.Asset, IsActive: true})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	require.NoError(t, s.SetAccountActive(id, false))
	active, err := s.ListAccounts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	found, err := s.FindAccountsByIDs(ctx, []int64{id, 77})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.False(t, found[id].IsActive)
}

func TestStore_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewStore().SaveTransactionHeader(ctx, header("TXN-000001", "2024-03-15", domain.Draft))
	assert.ErrorIs(t, err, context.Canceled)
}
