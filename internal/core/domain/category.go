package domain

// TransferCategoryID is the reserved category both legs of a transfer are
// posted under. Seeded by migration 000001.
const TransferCategoryID = "00000000-0000-0000-0000-000000000001"

// Category classifies journal entries (sales, payroll, transfers, ...).
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
