package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a logical move of funds between two containers ("traspaso"),
// materialized as two journal entries of equal magnitude sharing the transfer
// id: an expense at the source and an income at the destination. Both entries
// exist or neither does.
type Transfer struct {
	TransferID    string          `json:"transferID"`
	Source        ContainerRef    `json:"source"`
	Destination   ContainerRef    `json:"destination"`
	Amount        decimal.Decimal `json:"amount"`
	Concept       string          `json:"concept"`
	AuthorizedBy  string          `json:"authorizedBy"`
	TransferredAt time.Time       `json:"transferredAt"`
	OutEntryID    string          `json:"outEntryID"`
	InEntryID     string          `json:"inEntryID"`
	// IdempotencyKey is the caller-supplied operation identifier; a replay
	// with the same key returns the original transfer instead of re-posting.
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`
}
