package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
)

// PostingMode selects how transactions are written to the store.
type PostingMode string

const (
	// PostingModeAuto probes the store at startup and prefers the atomic path.
	PostingModeAuto PostingMode = "auto"
	// PostingModeAtomic requires the store-side atomic procedure.
	PostingModeAtomic PostingMode = "atomic"
	// PostingModeSequential writes header then entries, with compensating cleanup.
	// Concurrent postings are not isolated from each other on this path.
	PostingModeSequential PostingMode = "sequential"
)

// ParsePostingMode validates a configured posting mode.
func ParsePostingMode(s string) (PostingMode, error) {
	switch m := PostingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case PostingModeAuto, PostingModeAtomic, PostingModeSequential:
		return m, nil
	case "":
		return PostingModeAuto, nil
	}
	return "", fmt.Errorf("unknown posting mode %q (want auto, atomic or sequential)", s)
}

// cleanupTimeout bounds the compensating delete, which runs even if the request context is done.
const cleanupTimeout = 5 * time.Second

// PostRequest carries already-validated input into a Poster.
type PostRequest struct {
	Date        time.Time
	Description *string
	Reference   *string
	Status      domain.TransactionStatus
	CreatedBy   *string
	Validated   *ValidatedEntries
}

// Poster persists a validated transaction and its entries.
type Poster interface {
	Mode() PostingMode
	Post(ctx context.Context, req PostRequest) (*domain.Transaction, error)
}

// buildRows turns a PostRequest into the header and entry rows to insert.
func buildRows(req PostRequest, number string, now time.Time) (domain.Transaction, []domain.Entry) {
	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	txn := domain.Transaction{
		Number:      number,
		Date:        domain.TruncateToDate(req.Date),
		Description: req.Description,
		Reference:   req.Reference,
		Status:      status,
		TotalAmount: req.Validated.Total,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: req.CreatedBy,
		},
	}
	entries := make([]domain.Entry, len(req.Validated.Entries))
	for i, in := range req.Validated.Entries {
		entries[i] = domain.Entry{
			AccountID:   in.AccountID,
			CategoryID:  in.CategoryID,
			VendorID:    in.VendorID,
			Description: in.Description,
			Debit:       in.Debit,
			Credit:      in.Credit,
		}
	}
	return txn, entries
}

func attachID(txn domain.Transaction, entries []domain.Entry, id int64) *domain.Transaction {
	txn.ID = id
	for i := range entries {
		entries[i].TransactionID = id
	}
	txn.Entries = entries
	return &txn
}

// AtomicPoster writes the header and entries through a single store-side atomic call.
type AtomicPoster struct {
	BaseService
	writer   portsrepo.AtomicTransactionWriter
	numberer *TransactionNumberer
	now      func() time.Time
}

// NewAtomicPoster creates an AtomicPoster.
func NewAtomicPoster(writer portsrepo.AtomicTransactionWriter, numberer *TransactionNumberer) *AtomicPoster {
	return &AtomicPoster{writer: writer, numberer: numberer, now: time.Now}
}

var _ Poster = (*AtomicPoster)(nil)

func (p *AtomicPoster) Mode() PostingMode { return PostingModeAtomic }

// Post implements Poster.
func (p *AtomicPoster) Post(ctx context.Context, req PostRequest) (*domain.Transaction, error) {
	number := p.numberer.Next(ctx)
	txn, entries := buildRows(req, number, p.now().UTC())

	id, err := p.writer.CreateTransactionWithEntries(ctx, txn, entries)
	if err != nil {
		p.LogError(ctx, err, "Atomic transaction insert failed", slog.String("number", number))
		return nil, apperrors.Persistence("create transaction "+number, err)
	}
	return attachID(txn, entries, id), nil
}

// SequentialPoster writes the header, then the entries. If the entries fail it deletes
// the header again so that no entry-less transaction is left behind.
type SequentialPoster struct {
	BaseService
	writer   portsrepo.SequentialTransactionWriter
	numberer *TransactionNumberer
	now      func() time.Time
}

// NewSequentialPoster creates a SequentialPoster.
func NewSequentialPoster(writer portsrepo.SequentialTransactionWriter, numberer *TransactionNumberer) *SequentialPoster {
	return &SequentialPoster{writer: writer, numberer: numberer, now: time.Now}
}

var _ Poster = (*SequentialPoster)(nil)

func (p *SequentialPoster) Mode() PostingMode { return PostingModeSequential }

// Post implements Poster.
func (p *SequentialPoster) Post(ctx context.Context, req PostRequest) (*domain.Transaction, error) {
	number := p.numberer.Next(ctx)
	txn, entries := buildRows(req, number, p.now().UTC())

	id, err := p.writer.SaveTransactionHeader(ctx, txn)
	if err != nil {
		p.LogError(ctx, err, "Transaction header insert failed", slog.String("number", number))
		return nil, apperrors.Persistence("insert transaction "+number, err)
	}

	if err := p.writer.SaveEntries(ctx, id, entries); err != nil {
		return nil, p.rollbackHeader(ctx, id, number, err)
	}

	return attachID(txn, entries, id), nil
}

func (p *SequentialPoster) rollbackHeader(ctx context.Context, id int64, number string, entryErr error) error {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if delErr := p.writer.DeleteTransaction(cleanupCtx, id); delErr != nil && !errors.Is(delErr, apperrors.ErrNotFound) {
		p.LogError(ctx, delErr, "DATA INTEGRITY: orphaned transaction without entries, rollback failed",
			slog.Int64("transaction_id", id),
			slog.String("number", number),
			slog.String("entry_error", entryErr.Error()))
		return fmt.Errorf("%w: transaction %d (%s) was written without entries and could not be rolled back: %w",
			apperrors.ErrPartialWriteFailed, id, number, errors.Join(entryErr, delErr))
	}

	p.LogWarn(ctx, "Entry insert failed, transaction header rolled back",
		slog.Int64("transaction_id", id),
		slog.String("number", number),
		slog.String("error", entryErr.Error()))
	return fmt.Errorf("%w: entries for transaction %s were not saved, header rolled back: %w",
		apperrors.ErrPartialWriteFailed, number, entryErr)
}

// PostingStore is what SelectPoster needs from the repository.
type PostingStore interface {
	portsrepo.AtomicTransactionWriter
	portsrepo.SequentialTransactionWriter
	portsrepo.PostingCapabilityProber
}

// SelectPoster picks the posting strategy once, at startup, from the configured mode
// and a capability probe of the store.
func SelectPoster(ctx context.Context, mode PostingMode, store PostingStore, numberer *TransactionNumberer) (Poster, error) {
	logger := (&BaseService{}).GetLogger(ctx)

	if mode == PostingModeSequential {
		logger.Warn("Sequential posting configured: header and entries are written separately and concurrent postings are not atomic")
		return NewSequentialPoster(store, numberer), nil
	}

	atomicOK, err := store.SupportsAtomicPosting(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to probe atomic posting support: %w", err)
	}

	switch {
	case atomicOK:
		logger.Info("Atomic posting enabled")
		return NewAtomicPoster(store, numberer), nil
	case mode == PostingModeAtomic:
		return nil, errors.New("posting mode is atomic but the store does not provide the atomic posting procedure")
	default:
		logger.Warn("Store has no atomic posting procedure, falling back to sequential posting with compensating cleanup")
		return NewSequentialPoster(store, numberer), nil
	}
}
