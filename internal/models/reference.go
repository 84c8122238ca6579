package models

// Category is a row of the categories table.
type Category struct {
	CategoryID  int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	IsActive    bool    `db:"is_active"`
	AuditFields
}

// Vendor is a row of the vendors table.
type Vendor struct {
	VendorID int64   `db:"id"`
	Name     string  `db:"name"`
	Email    *string `db:"email"`
	Phone    *string `db:"phone"`
	IsActive bool    `db:"is_active"`
	AuditFields
}
