package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType mirrors the journal_entries.entry_type column.
type EntryType string

const (
	EntryIncome  EntryType = "INCOME"
	EntryExpense EntryType = "EXPENSE"
)

// JournalEntry maps to the append-only journal_entries table. Rows are never
// updated or deleted.
type JournalEntry struct {
	EntryID        string          `db:"entry_id"`
	ContainerType  ContainerType   `db:"container_type"`
	ContainerID    string          `db:"container_id"`
	EntryType      EntryType       `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"`
	CategoryID     string          `db:"category_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	TransferID     *string         `db:"transfer_id"`
	SourceActionID *string         `db:"source_action_id"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}

// Category maps to the categories table.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
