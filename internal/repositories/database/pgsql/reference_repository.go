package pgsql

import (
	"context"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hrms_ledger/internal/models"
	"github.com/SscSPs/hrms_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReferenceRepository struct {
	BaseRepository
}

// newPgxReferenceRepository creates a new repository for accounts, categories and vendors.
func newPgxReferenceRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepositoryFacade {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferenceRepositoryFacade = (*PgxReferenceRepository)(nil)

// SaveAccount inserts a new account.
func (r *PgxReferenceRepository) SaveAccount(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (code, name, account_type, parent_id, balance, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.Code, m.Name, m.AccountType, m.ParentID, m.Balance, m.IsActive, m.CreatedAt, m.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertError(err, "account with code "+m.Code)
	}
	return id, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxReferenceRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}

	query := `
		SELECT id, code, name, account_type, parent_id, balance, is_active, created_at, created_by
		FROM accounts
		WHERE id = ANY($1);
	`
	accounts, err := r.queryAccounts(ctx, query, accountIDs)
	if err != nil {
		return nil, err
	}

	accountsMap := make(map[int64]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.ID] = a
	}
	return accountsMap, nil
}

// ListAccounts retrieves accounts ordered by code.
func (r *PgxReferenceRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	query := `
		SELECT id, code, name, account_type, parent_id, balance, is_active, created_at, created_by
		FROM accounts
		WHERE ($1 = FALSE OR is_active)
		ORDER BY code;
	`
	return r.queryAccounts(ctx, query, activeOnly)
}

func (r *PgxReferenceRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.AccountID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.ParentID,
			&m.Balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// SaveCategory inserts a new category.
func (r *PgxReferenceRepository) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (name, description, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.Description, m.IsActive, m.CreatedAt, m.CreatedBy).Scan(&id); err != nil {
		return 0, wrapInsertError(err, "category "+m.Name)
	}
	return id, nil
}

// ListCategories retrieves categories ordered by name.
func (r *PgxReferenceRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, created_by
		FROM categories
		WHERE ($1 = FALSE OR is_active)
		ORDER BY name, id;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Description, &m.IsActive, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return categories, nil
}

// SaveVendor inserts a new vendor.
func (r *PgxReferenceRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) (int64, error) {
	m := mapping.ToModelVendor(vendor)
	query := `
		INSERT INTO vendors (name, email, phone, is_active, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	var id int64
	if err := r.Pool.QueryRow(ctx, query, m.Name, m.Email, m.Phone, m.IsActive, m.CreatedAt, m.CreatedBy).Scan(&id); err != nil {
		return 0, wrapInsertError(err, "vendor "+m.Name)
	}
	return id, nil
}

// ListVendors retrieves vendors ordered by name.
func (r *PgxReferenceRepository) ListVendors(ctx context.Context, activeOnly bool) ([]domain.Vendor, error) {
	query := `
		SELECT id, name, email, phone, is_active, created_at, created_by
		FROM vendors
		WHERE ($1 = FALSE OR is_active)
		ORDER BY name, id;
	`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vendors", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		var m models.Vendor
		if err := rows.Scan(&m.VendorID, &m.Name, &m.Email, &m.Phone, &m.IsActive, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vendor row", err)
		}
		vendors = append(vendors, mapping.ToDomainVendor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vendor rows", err)
	}
	return vendors, nil
}
