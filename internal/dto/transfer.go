package dto

import (
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExecuteTransferRequest is the payload for moving funds between two
// containers. EnforceSufficient opts in to the source-balance precondition;
// by default negative balances are legal (adjustment transfers).
type ExecuteTransferRequest struct {
	Source            ContainerRefRequest `json:"source" binding:"required"`
	Destination       ContainerRefRequest `json:"destination" binding:"required"`
	Amount            decimal.Decimal     `json:"amount" binding:"dgt0"`
	Concept           string              `json:"concept" binding:"required"`
	EnforceSufficient bool                `json:"enforceSufficient"`
	IdempotencyKey    *string             `json:"idempotencyKey" binding:"omitempty,max=128"`
}

// TransferResponse is the API representation of a transfer.
type TransferResponse struct {
	TransferID    string              `json:"transferID"`
	Source        domain.ContainerRef `json:"source"`
	Destination   domain.ContainerRef `json:"destination"`
	Amount        decimal.Decimal     `json:"amount"`
	Concept       string              `json:"concept"`
	AuthorizedBy  string              `json:"authorizedBy"`
	TransferredAt time.Time           `json:"transferredAt"`
	OutEntryID    string              `json:"outEntryID"`
	InEntryID     string              `json:"inEntryID"`
}

// ToTransferResponse converts a domain transfer to its API representation.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		Source:        t.Source,
		Destination:   t.Destination,
		Amount:        t.Amount,
		Concept:       t.Concept,
		AuthorizedBy:  t.AuthorizedBy,
		TransferredAt: t.TransferredAt,
		OutEntryID:    t.OutEntryID,
		InEntryID:     t.InEntryID,
	}
}

// ListTransfersParams holds pagination parameters for transfer listings.
type ListTransfersParams struct {
	Limit     int
	NextToken *string
}

// ListTransfersResponse is a page of transfers plus the token for the next page.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}
