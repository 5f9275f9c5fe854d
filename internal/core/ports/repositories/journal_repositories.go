package repositories

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for journal entries
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySourceActionID retrieves the entry posted under the given
	// caller operation id, for idempotent replays.
	FindEntryBySourceActionID(ctx context.Context, sourceActionID string) (*domain.JournalEntry, error)

	// ListEntriesByContainer retrieves a paginated list of entries for one
	// container using token-based pagination, newest first.
	ListEntriesByContainer(ctx context.Context, ref domain.ContainerRef, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ComputeBalance folds the container's opening balance and all entries
	// dated at or before asOf (all entries when asOf is nil). This is the
	// authoritative balance; the cached column is an optimization.
	ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error)
}

// EntryWriter defines write operations for journal entries
type EntryWriter interface {
	// SaveEntry appends the entry and applies its delta to the container's
	// cached balance, and to the linked account's cached balance when one
	// exists, within a single database transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// SaveTransfer persists the transfer and both of its entry legs, applying
	// both cached-balance deltas, within a single database transaction. The
	// container row locks are taken in deterministic (type, id) order.
	SaveTransfer(ctx context.Context, transfer domain.Transfer, outEntry domain.JournalEntry, inEntry domain.JournalEntry) error
}

// TransferReader defines read operations for transfers
type TransferReader interface {
	// FindTransferByID retrieves a specific transfer by its unique identifier.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// FindTransferByIdempotencyKey retrieves the transfer recorded under the
	// given caller operation id, for idempotent replays.
	FindTransferByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error)

	// ListTransfers retrieves a paginated list of transfers, newest first.
	ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.Transfer, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	EntryReader
	EntryWriter
	TransferReader
}
