package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus mirrors the drawer_sessions.status column.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// DrawerSession maps to the drawer_sessions table. A partial unique index on
// (drawer_id) WHERE status = 'OPEN' enforces the single-open-session rule at
// the storage layer.
type DrawerSession struct {
	SessionID       string           `db:"session_id"`
	DrawerID        string           `db:"drawer_id"`
	Status          SessionStatus    `db:"status"`
	OpenedAt        time.Time        `db:"opened_at"`
	OpenedBy        string           `db:"opened_by"`
	OpeningCount    decimal.Decimal  `db:"opening_count"`
	ClosedAt        *time.Time       `db:"closed_at"`
	ClosedBy        *string          `db:"closed_by"`
	ClosingCount    *decimal.Decimal `db:"closing_count"`
	ExpectedClosing *decimal.Decimal `db:"expected_closing"`
	Variance        *decimal.Decimal `db:"variance"`
}

// BalanceRepair maps to the balance_repairs audit table.
type BalanceRepair struct {
	RepairID      string          `db:"repair_id"`
	ContainerType ContainerType   `db:"container_type"`
	ContainerID   string          `db:"container_id"`
	OldBalance    decimal.Decimal `db:"old_balance"`
	NewBalance    decimal.Decimal `db:"new_balance"`
	RepairedBy    string          `db:"repaired_by"`
	RepairedAt    time.Time       `db:"repaired_at"`
}
