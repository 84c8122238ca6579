package repositories

import (
	"context"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
)

// AccountRepository defines chart-of-accounts data access.
type AccountRepository interface {
	// SaveAccount persists a new account and returns its id.
	// Returns apperrors.ErrDuplicate when the code is taken.
	SaveAccount(ctx context.Context, account domain.Account) (int64, error)

	// FindAccountsByIDs retrieves accounts keyed by id; missing ids are simply absent.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
}

// CategoryRepository defines category data access.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) (int64, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
}

// VendorRepository defines vendor data access.
type VendorRepository interface {
	SaveVendor(ctx context.Context, vendor domain.Vendor) (int64, error)
	ListVendors(ctx context.Context, activeOnly bool) ([]domain.Vendor, error)
}

// ReferenceRepositoryFacade combines the reference-data repositories.
type ReferenceRepositoryFacade interface {
	AccountRepository
	CategoryRepository
	VendorRepository
}
