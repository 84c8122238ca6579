package mapping

import (
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	"github.com/SscSPs/hrms_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.ID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.Type),
		ParentID:    d.ParentID,
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		Type:        domain.AccountType(m.AccountType),
		ParentID:    m.ParentID,
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:          m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID:    d.ID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		ID:          m.VendorID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
