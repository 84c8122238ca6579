package domain

import "time"

// AuditFields holds creation audit information for ledger entities.
// CreatedBy is nil when the row was written without an authenticated actor (e.g. from the CLI).
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `json:"createdBy"`
}
