package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReport compares a container's cached balance against the value
// recomputed from the journal. Drift is cached minus computed; non-zero drift
// means an update bypassed the journal's atomic path.
type BalanceReport struct {
	Container ContainerRef    `json:"container"`
	Name      string          `json:"name"`
	Cached    decimal.Decimal `json:"cached"`
	Computed  decimal.Decimal `json:"computed"`
	Drift     decimal.Decimal `json:"drift"`
	// Unlinked flags a container with no accounting account pointing at it.
	Unlinked  bool      `json:"unlinked"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HasDrift reports whether the cached and computed balances diverge.
func (r BalanceReport) HasDrift() bool {
	return !r.Drift.IsZero()
}

// OrphanKind classifies a structural integrity violation found by the scan.
type OrphanKind string

const (
	// OrphanEntryContainer: a journal entry whose container reference does not
	// resolve to any known drawer or bank account.
	OrphanEntryContainer OrphanKind = "ENTRY_CONTAINER_MISSING"
	// OrphanAccountContainer: an accounting account whose linked container no
	// longer exists.
	OrphanAccountContainer OrphanKind = "ACCOUNT_CONTAINER_MISSING"
	// OrphanUnlinkedContainer: a container no accounting account links to.
	OrphanUnlinkedContainer OrphanKind = "CONTAINER_UNLINKED"
)

// OrphanRef is one finding of the integrity scan. These are data-quality debt
// surfaced to operators, not runtime errors.
type OrphanRef struct {
	Kind      OrphanKind    `json:"kind"`
	EntryID   *string       `json:"entryID,omitempty"`
	AccountID *string       `json:"accountID,omitempty"`
	Container *ContainerRef `json:"container,omitempty"`
	Detail    string        `json:"detail"`
}

// BalanceRepair is the audit record written when a cached balance is reset to
// the journal fold. Repairs are explicit operator actions, never implicit.
type BalanceRepair struct {
	RepairID   string          `json:"repairID"`
	Container  ContainerRef    `json:"container"`
	OldBalance decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal `json:"newBalance"`
	RepairedBy string          `json:"repairedBy"`
	RepairedAt time.Time       `json:"repairedAt"`
}
