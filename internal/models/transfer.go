package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer maps to the transfers table. The two journal entry legs reference
// the transfer through journal_entries.transfer_id.
type Transfer struct {
	TransferID      string          `db:"transfer_id"`
	SourceType      ContainerType   `db:"source_type"`
	SourceID        string          `db:"source_id"`
	DestinationType ContainerType   `db:"destination_type"`
	DestinationID   string          `db:"destination_id"`
	Amount          decimal.Decimal `db:"amount"`
	Concept         string          `db:"concept"`
	AuthorizedBy    string          `db:"authorized_by"`
	TransferredAt   time.Time       `db:"transferred_at"`
	OutEntryID      string          `db:"out_entry_id"`
	InEntryID       string          `db:"in_entry_id"`
	IdempotencyKey  *string         `db:"idempotency_key"`
}
