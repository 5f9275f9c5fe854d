package services

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalSvcFacade defines the movement journal operations exposed to
// collaborator subsystems (sales, invoicing, payroll, manual adjustments).
type JournalSvcFacade interface {
	// PostEntry validates and appends one journal entry, atomically applying
	// its delta to the container's cached balance. A replay with the same
	// sourceActionID returns the original entry.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves a specific entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ComputeBalance folds the journal for one container up to asOf (now when
	// nil). This is the authoritative balance.
	ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error)

	// ListEntries retrieves a paginated list of entries for one container.
	ListEntries(ctx context.Context, ref domain.ContainerRef, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
