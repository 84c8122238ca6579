package domain

import "github.com/shopspring/decimal"

// UncategorizedName labels the bucket for entries without a category.
const UncategorizedName = "Uncategorized"

// TopCategoryLimit caps MonthlySummary.TopCategories.
const TopCategoryLimit = 10

// CategoryTotal is the spend attributed to one category within a period.
type CategoryTotal struct {
	ID    *int64          `json:"id"`
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// MonthlySummary aggregates posted transactions for a calendar month.
type MonthlySummary struct {
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Categories        []CategoryTotal `json:"categories"`
	TopCategories     []CategoryTotal `json:"topCategories"`
}
