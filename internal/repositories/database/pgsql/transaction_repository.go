package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/hrms_ledger/internal/models"
	"github.com/SscSPs/hrms_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// atomicPostingFunction is the stored function installed by the migrations.
const atomicPostingFunction = "create_accounting_transaction"

const transactionColumns = `id, transaction_number, transaction_date, description, reference, status, total_amount, created_at, created_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction headers and entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// entryPayload is the JSON shape create_accounting_transaction expects per entry.
type entryPayload struct {
	AccountID    int64           `json:"account_id"`
	CategoryID   *int64          `json:"category_id"`
	VendorID     *int64          `json:"vendor_id"`
	Description  *string         `json:"description"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
}

func encodeEntries(entries []domain.Entry) ([]byte, error) {
	payload := make([]entryPayload, len(entries))
	for i, e := range entries {
		m := mapping.ToModelEntry(e)
		payload[i] = entryPayload{
			AccountID:    m.AccountID,
			CategoryID:   m.CategoryID,
			VendorID:     m.VendorID,
			Description:  m.Description,
			DebitAmount:  m.DebitAmount,
			CreditAmount: m.CreditAmount,
		}
	}
	return json.Marshal(payload)
}

// CreateTransactionWithEntries calls the stored function, which inserts the header and
// every entry in a single statement.
func (r *PgxTransactionRepository) CreateTransactionWithEntries(ctx context.Context, txn domain.Transaction, entries []domain.Entry) (int64, error) {
	payload, err := encodeEntries(entries)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to encode entries for transaction "+txn.Number, err)
	}

	m := mapping.ToModelTransaction(txn)
	query := `SELECT ` + atomicPostingFunction + `($1, $2, $3, $4, $5, $6, $7, $8::jsonb);`

	var id int64
	err = r.Pool.QueryRow(ctx, query,
		m.TransactionNumber,
		m.TransactionDate,
		m.Description,
		m.Reference,
		m.Status,
		m.TotalAmount,
		m.CreatedBy,
		string(payload),
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertError(err, "transaction "+txn.Number)
	}
	return id, nil
}

// SaveTransactionHeader inserts only the header row.
func (r *PgxTransactionRepository) SaveTransactionHeader(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO accounting_transactions (transaction_number, transaction_date, description, reference, status, total_amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.TransactionNumber,
		m.TransactionDate,
		m.Description,
		m.Reference,
		m.Status,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, wrapInsertError(err, "transaction "+txn.Number)
	}
	return id, nil
}

// SaveEntries inserts all entries of one transaction as a batch inside a DB transaction.
func (r *PgxTransactionRepository) SaveEntries(ctx context.Context, transactionID int64, entries []domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO accounting_entries (transaction_id, account_id, category_id, vendor_id, description, debit_amount, credit_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query, transactionID, m.AccountID, m.CategoryID, m.VendorID, m.Description, m.DebitAmount, m.CreditAmount)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert entries for transaction "+strconv.FormatInt(transactionID, 10), err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a header; entries go with it through ON DELETE CASCADE.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounting_transactions WHERE id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+strconv.FormatInt(transactionID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
	}
	return nil
}

// NextTransactionNumber draws from accounting_transaction_number_seq.
func (r *PgxTransactionRepository) NextTransactionNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('accounting_transaction_number_seq');`).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to read transaction number sequence", err)
	}
	return seq, nil
}

// SupportsAtomicPosting checks that the stored posting function is installed.
func (r *PgxTransactionRepository) SupportsAtomicPosting(ctx context.Context) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = $1);`, atomicPostingFunction).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to probe for "+atomicPostingFunction, err)
	}
	return exists, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.TransactionDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM accounting_transactions WHERE id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %d not found", transactionID))
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+strconv.FormatInt(transactionID, 10), err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// buildListQuery renders the listing query for filter with positional arguments.
func buildListQuery(filter domain.TransactionFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, "transaction_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, "transaction_date <= $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM accounting_transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY transaction_date DESC, id DESC"

	args = append(args, filter.Limit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	return query, args
}

// ListTransactions retrieves a page of headers ordered by date desc, id desc.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query, args := buildListQuery(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	return collectTransactions(rows)
}

// FindTransactionsInRange retrieves headers with status dated within [from, to].
func (r *PgxTransactionRepository) FindTransactionsInRange(ctx context.Context, from, to time.Time, status domain.TransactionStatus) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM accounting_transactions
		WHERE transaction_date >= $1 AND transaction_date <= $2 AND status = $3
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, string(status))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions between "+from.Format(domain.DateLayout)+" and "+to.Format(domain.DateLayout), err)
	}
	return collectTransactions(rows)
}

// FindEntriesByTransactionIDs retrieves entries for many transactions in one query.
func (r *PgxTransactionRepository) FindEntriesByTransactionIDs(ctx context.Context, transactionIDs []int64) (map[int64][]domain.Entry, error) {
	result := make(map[int64][]domain.Entry, len(transactionIDs))
	for _, id := range transactionIDs {
		result[id] = []domain.Entry{}
	}
	if len(transactionIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, transaction_id, account_id, category_id, vendor_id, description, debit_amount, credit_amount
		FROM accounting_entries
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(
			&m.EntryID,
			&m.TransactionID,
			&m.AccountID,
			&m.CategoryID,
			&m.VendorID,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		result[m.TransactionID] = append(result[m.TransactionID], mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return result, nil
}
