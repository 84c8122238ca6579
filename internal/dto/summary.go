package dto

// SummaryParams holds the query parameters of GET /accounting/summary.
type SummaryParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1000,max=9999"`
}
