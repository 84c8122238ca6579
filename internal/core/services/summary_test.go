package services_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func entry(category *int64, debit, credit int64) domain.Entry {
	return domain.Entry{AccountID: 1, CategoryID: category, Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

func TestBuildMonthlySummary_Empty(t *testing.T) {
	s := services.BuildMonthlySummary(2, 2024, nil, nil, nil)

	assert.Equal(t, 2, s.Month)
	assert.Equal(t, 2024, s.Year)
	assert.Equal(t, 0, s.TotalTransactions)
	assert.True(t, s.TotalAmount.IsZero())
	assert.NotNil(t, s.Categories)
	assert.NotNil(t, s.TopCategories)
	assert.Empty(t, s.Categories)
}

func TestBuildMonthlySummary_TotalsAndCategories(t *testing.T) {
	rent, food := int64Ptr(1), int64Ptr(2)
	txns := []domain.Transaction{
		{ID: 10, TotalAmount: decimal.NewFromInt(1000)},
		{ID: 11, TotalAmount: decimal.NewFromInt(250)},
	}
	entries := map[int64][]domain.Entry{
		10: {entry(rent, 1000, 0), entry(nil, 0, 1000)},
		11: {entry(food, 250, 0), entry(food, 0, 250)},
	}
	names := map[int64]string{1: "Rent", 2: "Food"}

	s := services.BuildMonthlySummary(3, 2024, txns, entries, names)

	assert.Equal(t, 2, s.TotalTransactions)
	assert.True(t, decimal.NewFromInt(1250).Equal(s.TotalAmount))
	require.Len(t, s.Categories, 3)

	// Rent and Uncategorized tie at 1000; the named category sorts first.
	assert.Equal(t, "Rent", s.Categories[0].Name)
	assert.Equal(t, domain.UncategorizedName, s.Categories[1].Name)
	assert.Nil(t, s.Categories[1].ID)
	assert.Equal(t, "Food", s.Categories[2].Name)
	assert.True(t, decimal.NewFromInt(500).Equal(s.Categories[2].Total))
}

func TestBuildMonthlySummary_TopCategoriesCapped(t *testing.T) {
	var txns []domain.Transaction
	entries := map[int64][]domain.Entry{}
	for i := int64(1); i <= 12; i++ {
		txns = append(txns, domain.Transaction{ID: i, TotalAmount: decimal.NewFromInt(i)})
		entries[i] = []domain.Entry{entry(int64Ptr(i), i, 0), entry(int64Ptr(i), 0, i)}
	}

	s := services.BuildMonthlySummary(1, 2024, txns, entries, map[int64]string{})

	assert.Len(t, s.Categories, 12)
	require.Len(t, s.TopCategories, domain.TopCategoryLimit)
	assert.Equal(t, fmt.Sprintf("Category %d", 12), s.TopCategories[0].Name)
	assert.Equal(t, int64(3), *s.TopCategories[9].ID)
}

func TestBuildMonthlySummary_Deterministic(t *testing.T) {
	txns := []domain.Transaction{{ID: 1, TotalAmount: decimal.NewFromInt(10)}}
	entries := map[int64][]domain.Entry{1: {
		entry(int64Ptr(3), 5, 0), entry(int64Ptr(1), 5, 0), entry(int64Ptr(2), 0, 5), entry(nil, 0, 5),
	}}

	first := services.BuildMonthlySummary(1, 2024, txns, entries, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, services.BuildMonthlySummary(1, 2024, txns, entries, nil))
	}
	assert.Equal(t, int64(1), *first.Categories[0].ID)
	assert.Nil(t, first.Categories[3].ID)
}
