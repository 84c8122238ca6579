package dto

import (
	"time"

	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one line of a CreateTransactionRequest.
type CreateEntryRequest struct {
	AccountID   int64           `json:"accountId" binding:"required,gt=0"`
	CategoryID  *int64          `json:"categoryId,omitempty" binding:"omitempty,gt=0"`
	VendorID    *int64          `json:"vendorId,omitempty" binding:"omitempty,gt=0"`
	Description *string         `json:"description,omitempty" binding:"omitempty,max=500"`
	Debit       decimal.Decimal `json:"debit" swaggertype:"number"`
	Credit      decimal.Decimal `json:"credit" swaggertype:"number"`
}

// CreateTransactionRequest is the body of POST /accounting/transactions.
type CreateTransactionRequest struct {
	Date        string                   `json:"date" binding:"required,datetime=2006-01-02" example:"2024-03-15"`
	Description *string                  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Reference   *string                  `json:"reference,omitempty" binding:"omitempty,max=255"`
	Status      domain.TransactionStatus `json:"status,omitempty" binding:"omitempty,txnstatus" example:"draft"`
	Entries     []CreateEntryRequest     `json:"entries" binding:"required,min=1,dive"`
}

// ToEntryInputs converts the request lines into validator input.
func (r CreateTransactionRequest) ToEntryInputs() []domain.EntryInput {
	inputs := make([]domain.EntryInput, len(r.Entries))
	for i, e := range r.Entries {
		inputs[i] = domain.EntryInput{
			AccountID:   e.AccountID,
			CategoryID:  e.CategoryID,
			VendorID:    e.VendorID,
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
		}
	}
	return inputs
}

// CreateTransactionResponse is returned after a successful post.
type CreateTransactionResponse struct {
	Success       bool   `json:"success"`
	TransactionID int64  `json:"transactionId"`
	Number        string `json:"number"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status" binding:"omitempty,txnstatus"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
	VendorID    *int64          `json:"vendorId,omitempty"`
	Description *string         `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit" swaggertype:"number"`
	Credit      decimal.Decimal `json:"credit" swaggertype:"number"`
}

// TransactionResponse defines the data returned for a transaction with its entries.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Number      string          `json:"number"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
	Reference   *string         `json:"reference,omitempty"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	CreatedBy   *string         `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Entries     []EntryResponse `json:"entries"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		CategoryID:  e.CategoryID,
		VendorID:    e.VendorID,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = ToEntryResponse(e)
	}
	return TransactionResponse{
		ID:          t.ID,
		Number:      t.Number,
		Date:        t.Date.Format(domain.DateLayout),
		Description: t.Description,
		Reference:   t.Reference,
		Status:      string(t.Status),
		TotalAmount: t.TotalAmount,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		Entries:     entries,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}
