package domain

// Category is an optional spend-analysis tag on an entry.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	AuditFields
}

// Vendor is an optional counterparty reference on an entry.
type Vendor struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive bool    `json:"isActive"`
	AuditFields
}
