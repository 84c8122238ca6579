package services

import (
	"context"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/dto"
)

// ReferenceReaderSvc lists active reference data.
type ReferenceReaderSvc interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
}

// ReferenceWriterSvc creates reference data. Intended for administrators.
type ReferenceWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID *string) (*domain.Account, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID *string) (*domain.Category, error)
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest, userID *string) (*domain.Vendor, error)
}

// ReferenceSvcFacade combines the reference-data service interfaces.
type ReferenceSvcFacade interface {
	ReferenceReaderSvc
	ReferenceWriterSvc
}
