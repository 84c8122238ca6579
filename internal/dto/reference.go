package dto

import "github.com/SscSPs/hrms_ledger/internal/core/domain"

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code     string             `json:"code" binding:"required,max=32"`
	Name     string             `json:"name" binding:"required,max=255"`
	Type     domain.AccountType `json:"type" binding:"required,accounttype" example:"expense"`
	ParentID *int64             `json:"parentId,omitempty" binding:"omitempty,gt=0"`
}

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// CreateVendorRequest defines the data needed to create a new vendor.
type CreateVendorRequest struct {
	Name  string  `json:"name" binding:"required,max=255"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,max=32"`
}
