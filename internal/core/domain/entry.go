package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal entry adds money to or removes money
// from its container.
type EntryType string

const (
	EntryIncome  EntryType = "INCOME"
	EntryExpense EntryType = "EXPENSE"
)

// JournalEntry is one dated monetary movement against exactly one container.
// Entries are immutable once posted and never deleted; corrections are made
// via offsetting entries.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	Container   ContainerRef    `json:"container"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	CategoryID  string          `json:"categoryID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	// TransferID links the two legs of a transfer; nil for ordinary entries.
	TransferID *string `json:"transferID,omitempty"`
	// SourceActionID is the caller-supplied operation identifier that makes
	// retries idempotent; nil when the caller did not supply one.
	SourceActionID *string   `json:"sourceActionID,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// SignedAmount returns the delta this entry applies to its container balance:
// positive for income, negative for expense.
func (e JournalEntry) SignedAmount() decimal.Decimal {
	if e.EntryType == EntryExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}
