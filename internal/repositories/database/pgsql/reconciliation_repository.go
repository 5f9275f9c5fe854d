package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	"github.com/Dadminete/caja-ledger/internal/models"
	"github.com/Dadminete/caja-ledger/internal/utils/mapping"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for balance repair
// and integrity scan data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepository
var _ portsrepo.ReconciliationRepository = (*PgxReconciliationRepository)(nil)

// RepairBalance resets the container's cached balance to the journal fold,
// writing an audit row, all within one database transaction. Running the fold
// under the container's row lock makes a repeated repair a no-op.
func (r *PgxReconciliationRepository) RepairBalance(ctx context.Context, ref domain.ContainerRef, repairedBy string, now time.Time) (*domain.BalanceRepair, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	oldBalance, err := lockContainerBalance(ctx, tx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to lock container %s for repair: %w", ref.ID, err)
	}

	newBalance, err := computeBalanceWith(ctx, tx, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fold journal for container %s: %w", ref.ID, err)
	}

	if err := setContainerBalance(ctx, tx, ref, newBalance, repairedBy, now); err != nil {
		return nil, fmt.Errorf("failed to write repaired balance for container %s: %w", ref.ID, err)
	}
	// The linked account absorbs the same correction delta.
	if err := adjustLinkedAccountBalance(ctx, tx, ref, newBalance.Sub(oldBalance), repairedBy, now); err != nil {
		return nil, fmt.Errorf("failed to adjust linked account for container %s: %w", ref.ID, err)
	}

	repair := models.BalanceRepair{
		RepairID:      uuid.NewString(),
		ContainerType: models.ContainerType(ref.Type),
		ContainerID:   ref.ID,
		OldBalance:    oldBalance,
		NewBalance:    newBalance,
		RepairedBy:    repairedBy,
		RepairedAt:    now,
	}
	query := `
		INSERT INTO balance_repairs (repair_id, container_type, container_id, old_balance, new_balance, repaired_by, repaired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		repair.RepairID,
		repair.ContainerType,
		repair.ContainerID,
		repair.OldBalance,
		repair.NewBalance,
		repair.RepairedBy,
		repair.RepairedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert repair audit row for container "+ref.ID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d := mapping.ToDomainRepair(repair)
	return &d, nil
}

// FindOrphans scans for structural integrity violations: entries addressing
// unknown containers, accounts whose linked container is missing, and
// containers no account links to.
func (r *PgxReconciliationRepository) FindOrphans(ctx context.Context) ([]domain.OrphanRef, error) {
	orphans := []domain.OrphanRef{}

	entryQuery := `
		SELECT e.entry_id, e.container_type, e.container_id
		FROM journal_entries e
		WHERE (e.container_type = 'DRAWER' AND NOT EXISTS (SELECT 1 FROM cash_drawers d WHERE d.drawer_id = e.container_id))
		   OR (e.container_type = 'BANK_ACCOUNT' AND NOT EXISTS (SELECT 1 FROM bank_accounts b WHERE b.bank_account_id = e.container_id));
	`
	rows, err := r.Pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan for orphaned entries", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entryID, containerType, containerID string
		if err := rows.Scan(&entryID, &containerType, &containerID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan orphaned entry row", err)
		}
		ref := domain.ContainerRef{Type: domain.ContainerType(containerType), ID: containerID}
		orphans = append(orphans, domain.OrphanRef{
			Kind:      domain.OrphanEntryContainer,
			EntryID:   &entryID,
			Container: &ref,
			Detail:    "journal entry references a container that does not exist",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating orphaned entry rows", err)
	}

	accountQuery := `
		SELECT a.account_id, a.container_type, a.container_id
		FROM accounts a
		WHERE a.container_id IS NOT NULL
		  AND ((a.container_type = 'DRAWER' AND NOT EXISTS (SELECT 1 FROM cash_drawers d WHERE d.drawer_id = a.container_id))
		    OR (a.container_type = 'BANK_ACCOUNT' AND NOT EXISTS (SELECT 1 FROM bank_accounts b WHERE b.bank_account_id = a.container_id)));
	`
	rows, err = r.Pool.Query(ctx, accountQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan for orphaned account links", err)
	}
	defer rows.Close()
	for rows.Next() {
		var accountID, containerType, containerID string
		if err := rows.Scan(&accountID, &containerType, &containerID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan orphaned account row", err)
		}
		ref := domain.ContainerRef{Type: domain.ContainerType(containerType), ID: containerID}
		orphans = append(orphans, domain.OrphanRef{
			Kind:      domain.OrphanAccountContainer,
			AccountID: &accountID,
			Container: &ref,
			Detail:    "account links to a container that does not exist",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating orphaned account rows", err)
	}

	unlinkedQuery := `
		SELECT 'DRAWER', d.drawer_id
		FROM cash_drawers d
		WHERE NOT EXISTS (SELECT 1 FROM accounts a WHERE a.container_type = 'DRAWER' AND a.container_id = d.drawer_id)
		UNION ALL
		SELECT 'BANK_ACCOUNT', b.bank_account_id
		FROM bank_accounts b
		WHERE NOT EXISTS (SELECT 1 FROM accounts a WHERE a.container_type = 'BANK_ACCOUNT' AND a.container_id = b.bank_account_id);
	`
	rows, err = r.Pool.Query(ctx, unlinkedQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan for unlinked containers", err)
	}
	defer rows.Close()
	for rows.Next() {
		var containerType, containerID string
		if err := rows.Scan(&containerType, &containerID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unlinked container row", err)
		}
		ref := domain.ContainerRef{Type: domain.ContainerType(containerType), ID: containerID}
		orphans = append(orphans, domain.OrphanRef{
			Kind:      domain.OrphanUnlinkedContainer,
			Container: &ref,
			Detail:    "no accounting account links to this container",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unlinked container rows", err)
	}

	return orphans, nil
}

// ListRepairs retrieves the repair audit history, newest first.
func (r *PgxReconciliationRepository) ListRepairs(ctx context.Context, ref *domain.ContainerRef, limit int) ([]domain.BalanceRepair, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT repair_id, container_type, container_id, old_balance, new_balance, repaired_by, repaired_at
		FROM balance_repairs
	`
	args := []any{}
	if ref != nil {
		query += ` WHERE container_type = $1 AND container_id = $2 ORDER BY repaired_at DESC LIMIT $3;`
		args = append(args, string(ref.Type), ref.ID, limit)
	} else {
		query += ` ORDER BY repaired_at DESC LIMIT $1;`
		args = append(args, limit)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance repairs", err)
	}
	defer rows.Close()

	repairs := []domain.BalanceRepair{}
	for rows.Next() {
		var m models.BalanceRepair
		err := rows.Scan(
			&m.RepairID,
			&m.ContainerType,
			&m.ContainerID,
			&m.OldBalance,
			&m.NewBalance,
			&m.RepairedBy,
			&m.RepairedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance repair row", err)
		}
		repairs = append(repairs, mapping.ToDomainRepair(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance repair rows", err)
	}
	return repairs, nil
}
