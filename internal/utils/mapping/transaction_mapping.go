package mapping

import (
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.ID,
		TransactionNumber: d.Number,
		TransactionDate:   domain.TruncateToDate(d.Date),
		Description:       d.Description,
		Reference:         d.Reference,
		Status:            string(d.Status),
		TotalAmount:       d.TotalAmount,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:          m.TransactionID,
		Number:      m.TransactionNumber,
		Date:        domain.TruncateToDate(m.TransactionDate),
		Description: m.Description,
		Reference:   m.Reference,
		Status:      domain.TransactionStatus(m.Status),
		TotalAmount: m.TotalAmount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:       d.ID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		VendorID:      d.VendorID,
		Description:   d.Description,
		DebitAmount:   d.Debit,
		CreditAmount:  d.Credit,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		ID:            m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		VendorID:      m.VendorID,
		Description:   m.Description,
		Debit:         m.DebitAmount,
		Credit:        m.CreditAmount,
	}
}
