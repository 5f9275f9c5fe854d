package repositories

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// ReconciliationRepository defines the storage operations behind balance
// repair and the structural integrity scan.
type ReconciliationRepository interface {
	// RepairBalance sets the container's cached balance (and the linked
	// account's, when one exists) to the journal fold, recording a
	// BalanceRepair audit row, all within one database transaction.
	RepairBalance(ctx context.Context, ref domain.ContainerRef, repairedBy string, now time.Time) (*domain.BalanceRepair, error)

	// FindOrphans scans for entries addressing unknown containers, accounts
	// whose linked container is missing, and containers with no account link.
	FindOrphans(ctx context.Context) ([]domain.OrphanRef, error)

	// ListRepairs retrieves the repair audit history, optionally filtered to
	// one container, newest first.
	ListRepairs(ctx context.Context, ref *domain.ContainerRef, limit int) ([]domain.BalanceRepair, error)
}
