package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
)

// TransactionNumberPrefix starts every human-readable transaction number.
const TransactionNumberPrefix = "TXN-"

// TransactionNumberer produces unique transaction numbers.
//
// The store sequence is preferred. When it cannot be reached the numberer falls back
// to TXN-<epoch millis>-<6 random hex>, which is unique with overwhelming probability
// but not monotonic. The UNIQUE constraint on the number column remains the backstop.
type TransactionNumberer struct {
	BaseService
	source portsrepo.TransactionNumberSource
	now    func() time.Time
	suffix func() string
}

// NewTransactionNumberer creates a numberer backed by source. A nil source always uses the fallback.
func NewTransactionNumberer(source portsrepo.TransactionNumberSource) *TransactionNumberer {
	return &TransactionNumberer{
		source: source,
		now:    time.Now,
		suffix: randomSuffix,
	}
}

// Next returns a fresh transaction number.
func (n *TransactionNumberer) Next(ctx context.Context) string {
	if n.source != nil {
		seq, err := n.source.NextTransactionNumber(ctx)
		if err == nil {
			return FormatTransactionNumber(seq)
		}
		n.LogWarn(ctx, "Transaction number sequence unavailable, using time-based fallback",
			slog.String("error", err.Error()))
	}
	return n.fallback()
}

func (n *TransactionNumberer) fallback() string {
	return fmt.Sprintf("%s%d-%s", TransactionNumberPrefix, n.now().UnixMilli(), n.suffix())
}

// FormatTransactionNumber renders a sequence value as TXN-000042.
func FormatTransactionNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", TransactionNumberPrefix, seq)
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
