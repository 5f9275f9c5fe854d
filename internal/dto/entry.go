package dto

import (
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryRequest is the payload for posting one journal entry. Exactly one
// of DrawerID and BankAccountID must be set; the service rejects ambiguous or
// missing references before any write.
type PostEntryRequest struct {
	DrawerID       *string          `json:"drawerID" binding:"omitempty,uuid"`
	BankAccountID  *string          `json:"bankAccountID" binding:"omitempty,uuid"`
	EntryType      domain.EntryType `json:"entryType" binding:"required,oneof=INCOME EXPENSE"`
	Amount         decimal.Decimal  `json:"amount" binding:"dgt0"`
	CategoryID     string           `json:"categoryID" binding:"required,uuid"`
	Date           time.Time        `json:"date" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	SourceActionID *string          `json:"sourceActionID" binding:"omitempty,max=128"`
}

// EntryResponse is the API representation of a journal entry.
type EntryResponse struct {
	EntryID        string              `json:"entryID"`
	Container      domain.ContainerRef `json:"container"`
	EntryType      domain.EntryType    `json:"entryType"`
	Amount         decimal.Decimal     `json:"amount"`
	CategoryID     string              `json:"categoryID"`
	EntryDate      time.Time           `json:"entryDate"`
	Description    string              `json:"description"`
	TransferID     *string             `json:"transferID,omitempty"`
	SourceActionID *string             `json:"sourceActionID,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

// ToEntryResponse converts a domain entry to its API representation.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		Container:      e.Container,
		EntryType:      e.EntryType,
		Amount:         e.Amount,
		CategoryID:     e.CategoryID,
		EntryDate:      e.EntryDate,
		Description:    e.Description,
		TransferID:     e.TransferID,
		SourceActionID: e.SourceActionID,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

// ListEntriesParams holds pagination parameters for entry listings.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// BalanceResponse is the result of a balance computation.
type BalanceResponse struct {
	Container domain.ContainerRef `json:"container"`
	Balance   decimal.Decimal     `json:"balance"`
	AsOf      time.Time           `json:"asOf"`
}
