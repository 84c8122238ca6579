// Package memory provides an in-process store for local runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
)

// ErrAtomicPostingUnsupported is returned by CreateTransactionWithEntries when the
// store was built WithAtomicPosting(false).
var ErrAtomicPostingUnsupported = errors.New("atomic posting is not supported by this store")

// Store keeps ledger data in maps guarded by a single mutex.
type Store struct {
	mu sync.RWMutex

	atomicPosting bool

	accounts     map[int64]domain.Account
	categories   map[int64]domain.Category
	vendors      map[int64]domain.Vendor
	transactions map[int64]domain.Transaction
	entries      map[int64][]domain.Entry

	nextAccountID  int64
	nextCategoryID int64
	nextVendorID   int64
	nextTxnID      int64
	nextEntryID    int64
	numberSeq      int64

	hooks Hooks
}

// Hooks inject failures into individual store operations. Nil hooks are skipped.
type Hooks struct {
	BeforeSaveHeader  func(txn domain.Transaction) error
	BeforeSaveEntries func(transactionID int64, entries []domain.Entry) error
	BeforeDelete      func(transactionID int64) error
	BeforeNextNumber  func() error
}

// Option configures a Store.
type Option func(*Store)

// WithAtomicPosting toggles whether the store reports and honours the atomic posting path.
func WithAtomicPosting(enabled bool) Option {
	return func(s *Store) { s.atomicPosting = enabled }
}

// WithHooks installs failure hooks.
func WithHooks(h Hooks) Option {
	return func(s *Store) { s.hooks = h }
}

// NewStore creates an empty store. Atomic posting is enabled by default.
func NewStore(opts ...Option) *Store {
	s := &Store{
		atomicPosting: true,
		accounts:      make(map[int64]domain.Account),
		categories:    make(map[int64]domain.Category),
		vendors:       make(map[int64]domain.Vendor),
		transactions:  make(map[int64]domain.Transaction),
		entries:       make(map[int64][]domain.Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReferenceRepositoryFacade   = (*Store)(nil)
)

// SetHooks replaces the failure hooks.
func (s *Store) SetHooks(h Hooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

// Provider returns a RepositoryProvider backed by this store.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{TransactionRepo: s, ReferenceRepo: s}
}

// --- transactions ---

func (s *Store) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	return &txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	if filter.Offset >= len(matched) {
		return []domain.Transaction{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *Store) FindTransactionsInRange(ctx context.Context, from, to time.Time, status domain.TransactionStatus) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if t.Status != status || t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) FindEntriesByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[int64][]domain.Entry, len(transactionIDs))
	for _, id := range transactionIDs {
		stored := s.entries[id]
		copied := make([]domain.Entry, len(stored))
		copy(copied, stored)
		result[id] = copied
	}
	return result, nil
}

// CreateTransactionWithEntries inserts the header and entries under one lock.
func (s *Store) CreateTransactionWithEntries(ctx context.Context, txn domain.Transaction, entries []domain.Entry) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.atomicPosting {
		return 0, ErrAtomicPostingUnsupported
	}
	if s.hooks.BeforeSaveHeader != nil {
		if err := s.hooks.BeforeSaveHeader(txn); err != nil {
			return 0, err
		}
	}
	if err := s.checkNumberUnique(txn.Number); err != nil {
		return 0, err
	}
	if s.hooks.BeforeSaveEntries != nil {
		if err := s.hooks.BeforeSaveEntries(s.nextTxnID+1, entries); err != nil {
			return 0, err
		}
	}

	id := s.insertHeader(txn)
	s.insertEntries(id, entries)
	return id, nil
}

func (s *Store) SaveTransactionHeader(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hooks.BeforeSaveHeader != nil {
		if err := s.hooks.BeforeSaveHeader(txn); err != nil {
			return 0, err
		}
	}
	if err := s.checkNumberUnique(txn.Number); err != nil {
		return 0, err
	}
	return s.insertHeader(txn), nil
}

func (s *Store) SaveEntries(ctx context.Context, transactionID int64, entries []domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hooks.BeforeSaveEntries != nil {
		if err := s.hooks.BeforeSaveEntries(transactionID, entries); err != nil {
			return err
		}
	}
	if _, ok := s.transactions[transactionID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	s.insertEntries(transactionID, entries)
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, transactionID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hooks.BeforeDelete != nil {
		if err := s.hooks.BeforeDelete(transactionID); err != nil {
			return err
		}
	}
	if _, ok := s.transactions[transactionID]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	delete(s.transactions, transactionID)
	delete(s.entries, transactionID)
	return nil
}

func (s *Store) NextTransactionNumber(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hooks.BeforeNextNumber != nil {
		if err := s.hooks.BeforeNextNumber(); err != nil {
			return 0, err
		}
	}
	s.numberSeq++
	return s.numberSeq, nil
}

func (s *Store) SupportsAtomicPosting(context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atomicPosting, nil
}

// TransactionCount reports how many headers are stored.
func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

func (s *Store) checkNumberUnique(number string) error {
	for _, t := range s.transactions {
		if t.Number == number {
			return fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, number)
		}
	}
	return nil
}

func (s *Store) insertHeader(txn domain.Transaction) int64 {
	s.nextTxnID++
	txn.ID = s.nextTxnID
	txn.Entries = nil
	s.transactions[txn.ID] = txn
	return txn.ID
}

func (s *Store) insertEntries(transactionID int64, entries []domain.Entry) {
	for _, e := range entries {
		s.nextEntryID++
		e.ID = s.nextEntryID
		e.TransactionID = transactionID
		s.entries[transactionID] = append(s.entries[transactionID], e)
	}
}

// --- reference data ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Code == account.Code {
			return 0, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	s.nextAccountID++
	account.ID = s.nextAccountID
	s.accounts[account.ID] = account
	return account.ID, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.accounts[id]; ok {
			result[id] = a
		}
	}
	return result, nil
}

func (s *Store) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if activeOnly && !a.IsActive {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// SetAccountActive flips an account's active flag. Returns ErrNotFound for unknown ids.
func (s *Store) SetAccountActive(accountID int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", accountID))
	}
	a.IsActive = active
	s.accounts[accountID] = a
	return nil
}

func (s *Store) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategoryID++
	category.ID = s.nextCategoryID
	s.categories[category.ID] = category
	return category.ID, nil
}

func (s *Store) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Store) SaveVendor(ctx context.Context, vendor domain.Vendor) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextVendorID++
	vendor.ID = s.nextVendorID
	s.vendors[vendor.ID] = vendor
	return vendor.ID, nil
}

func (s *Store) ListVendors(ctx context.Context, activeOnly bool) ([]domain.Vendor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		if activeOnly && !v.IsActive {
			continue
		}
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
