package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountScale is the number of minor-unit digits an amount may carry.
const amountScale = 2

// ValidatedEntries is the output of ValidateEntries: entries proven to form a
// legal double-entry transaction, plus the agreed total (== debits == credits).
type ValidatedEntries struct {
	Entries []domain.EntryInput
	Total   decimal.Decimal
}

// ValidateEntries decides whether entries form a balanced double-entry transaction.
// Every entry is checked individually before the balance, so a malformed entry is
// reported as apperrors.ErrInvalidEntry even when the totals happen to agree.
func ValidateEntries(entries []domain.EntryInput) (*ValidatedEntries, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: transaction must contain at least one entry", apperrors.ErrInvalidEntry)
	}

	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %s", apperrors.ErrInvalidEntry, i+1, err.Error())
		}
	}

	debitsSum := decimal.Zero
	creditsSum := decimal.Zero
	for _, e := range entries {
		debitsSum = debitsSum.Add(e.Debit)
		creditsSum = creditsSum.Add(e.Credit)
	}

	if !debitsSum.Equal(creditsSum) {
		return nil, fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedTransaction, debitsSum.StringFixed(amountScale), creditsSum.StringFixed(amountScale))
	}

	return &ValidatedEntries{Entries: entries, Total: debitsSum}, nil
}

func validateEntry(e domain.EntryInput) error {
	if e.AccountID <= 0 {
		return errors.New("accountId must be a positive integer")
	}
	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return errors.New("debit and credit must not be negative")
	}
	if e.Debit.IsPositive() && e.Credit.IsPositive() {
		return errors.New("an entry cannot have both a debit and a credit")
	}
	if e.Debit.IsZero() && e.Credit.IsZero() {
		return errors.New("an entry must have either a debit or a credit")
	}
	if !hasMinorUnitPrecision(e.Debit) || !hasMinorUnitPrecision(e.Credit) {
		return fmt.Errorf("amounts may have at most %d decimal places", amountScale)
	}
	return nil
}

func hasMinorUnitPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(amountScale))
}
