package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// Cache keys for active reference lists.
const (
	AccountsCacheKey   = "reference:accounts:active"
	CategoriesCacheKey = "reference:categories:active"
	VendorsCacheKey    = "reference:vendors:active"
)

// DefaultReferenceCacheTTL applies when WithReferenceCache is given a non-positive ttl.
const DefaultReferenceCacheTTL = 5 * time.Minute

// referenceService implements the ReferenceSvcFacade interface
type referenceService struct {
	BaseService
	repo     portsrepo.ReferenceRepositoryFacade
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// ReferenceServiceOption is a functional option for configuring the reference service
type ReferenceServiceOption func(*referenceService)

// WithReferenceCache caches active reference lists for ttl.
func WithReferenceCache(c cache.Cache, ttl time.Duration) ReferenceServiceOption {
	return func(s *referenceService) {
		s.cache = c
		if ttl <= 0 {
			ttl = DefaultReferenceCacheTTL
		}
		s.cacheTTL = ttl
	}
}

// NewReferenceService creates a new reference-data service.
func NewReferenceService(repo portsrepo.ReferenceRepositoryFacade, options ...ReferenceServiceOption) portssvc.ReferenceSvcFacade {
	svc := &referenceService{
		repo: repo,
		now:  time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

// loadCached serves key from the cache when possible and otherwise calls load and fills the cache.
// Cache failures are logged and never fail the request.
func loadCached[T any](ctx context.Context, s *referenceService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var cached []T
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.LogWarn(ctx, "Reference cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if hit {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			s.LogWarn(ctx, "Reference cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return items, nil
}

func (s *referenceService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.LogWarn(ctx, "Reference cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// ListAccounts implements portssvc.ReferenceReaderSvc
func (s *referenceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return loadCached(ctx, s, AccountsCacheKey, func(ctx context.Context) ([]domain.Account, error) {
		accounts, err := s.repo.ListAccounts(ctx, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list accounts")
			return nil, apperrors.Persistence("list accounts", err)
		}
		return accounts, nil
	})
}

// ListCategories implements portssvc.ReferenceReaderSvc
func (s *referenceService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return loadCached(ctx, s, CategoriesCacheKey, func(ctx context.Context) ([]domain.Category, error) {
		categories, err := s.repo.ListCategories(ctx, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list categories")
			return nil, apperrors.Persistence("list categories", err)
		}
		return categories, nil
	})
}

// ListVendors implements portssvc.ReferenceReaderSvc
func (s *referenceService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return loadCached(ctx, s, VendorsCacheKey, func(ctx context.Context) ([]domain.Vendor, error) {
		vendors, err := s.repo.ListVendors(ctx, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list vendors")
			return nil, apperrors.Persistence("list vendors", err)
		}
		return vendors, nil
	})
}

// CreateAccount implements portssvc.ReferenceWriterSvc
func (s *referenceService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID *string) (*domain.Account, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}

	if req.ParentID != nil {
		parents, err := s.repo.FindAccountsByIDs(ctx, []int64{*req.ParentID})
		if err != nil {
			s.LogError(ctx, err, "Failed to look up parent account", slog.Int64("parent_id", *req.ParentID))
			return nil, apperrors.Persistence("find parent account", err)
		}
		if _, ok := parents[*req.ParentID]; !ok {
			return nil, fmt.Errorf("%w: parent account %d does not exist", apperrors.ErrValidation, *req.ParentID)
		}
	}

	account := domain.Account{
		Code:     code,
		Name:     name,
		Type:     req.Type,
		ParentID: req.ParentID,
		Balance:  decimal.Zero,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt: s.now().UTC(),
			CreatedBy: userID,
		},
	}

	id, err := s.repo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, apperrors.Persistence("save account "+code, err)
	}
	account.ID = id
	s.invalidate(ctx, AccountsCacheKey)

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", id), slog.String("code", code))
	return &account, nil
}

// CreateCategory implements portssvc.ReferenceWriterSvc
func (s *referenceService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID *string) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category := domain.Category{
		Name:        name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: s.now().UTC(), CreatedBy: userID},
	}

	id, err := s.repo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, apperrors.Persistence("save category", err)
	}
	category.ID = id
	s.invalidate(ctx, CategoriesCacheKey)

	s.LogInfo(ctx, "Category created", slog.Int64("category_id", id))
	return &category, nil
}

// CreateVendor implements portssvc.ReferenceWriterSvc
func (s *referenceService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest, userID *string) (*domain.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: vendor name is required", apperrors.ErrValidation)
	}

	vendor := domain.Vendor{
		Name:        name,
		Email:       req.Email,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: s.now().UTC(), CreatedBy: userID},
	}

	id, err := s.repo.SaveVendor(ctx, vendor)
	if err != nil {
		s.LogError(ctx, err, "Failed to save vendor", slog.String("name", name))
		return nil, apperrors.Persistence("save vendor", err)
	}
	vendor.ID = id
	s.invalidate(ctx, VendorsCacheKey)

	s.LogInfo(ctx, "Vendor created", slog.Int64("vendor_id", id))
	return &vendor, nil
}
