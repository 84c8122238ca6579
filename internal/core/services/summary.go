package services

import (
	"fmt"
	"sort"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildMonthlySummary aggregates qualifying transactions and their entries.
// Callers pass only the transactions that belong in the summary.
// Category totals are ordered by total descending; ties fall back to ascending
// category id with the uncategorized bucket last, which keeps repeated calls identical.
func BuildMonthlySummary(month, year int, txns []domain.Transaction, entriesByTxn map[int64][]domain.Entry, categoryNames map[int64]string) *domain.MonthlySummary {
	summary := &domain.MonthlySummary{
		Month:         month,
		Year:          year,
		TotalAmount:   decimal.Zero,
		Categories:    []domain.CategoryTotal{},
		TopCategories: []domain.CategoryTotal{},
	}

	totals := make(map[int64]decimal.Decimal)
	uncategorized := decimal.Zero
	hasUncategorized := false

	for _, txn := range txns {
		summary.TotalTransactions++
		summary.TotalAmount = summary.TotalAmount.Add(txn.TotalAmount)

		for _, entry := range entriesByTxn[txn.ID] {
			if entry.CategoryID == nil {
				uncategorized = uncategorized.Add(entry.Amount())
				hasUncategorized = true
				continue
			}
			totals[*entry.CategoryID] = totals[*entry.CategoryID].Add(entry.Amount())
		}
	}

	for id, total := range totals {
		name, ok := categoryNames[id]
		if !ok {
			name = fmt.Sprintf("Category %d", id)
		}
		summary.Categories = append(summary.Categories, domain.CategoryTotal{ID: &id, Name: name, Total: total})
	}
	if hasUncategorized {
		summary.Categories = append(summary.Categories, domain.CategoryTotal{Name: domain.UncategorizedName, Total: uncategorized})
	}

	sort.SliceStable(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		switch {
		case a.ID == nil:
			return false
		case b.ID == nil:
			return true
		default:
			return *a.ID < *b.ID
		}
	})

	top := summary.Categories
	if len(top) > domain.TopCategoryLimit {
		top = top[:domain.TopCategoryLimit]
	}
	summary.TopCategories = append(summary.TopCategories, top...)

	return summary
}
