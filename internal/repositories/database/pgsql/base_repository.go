package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// dbQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so balance helpers
// can run inside or outside a transaction.
type dbQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// containerTable resolves the table and id column backing a container kind.
// Table names come from this fixed switch, never from input.
func containerTable(t domain.ContainerType) (string, string, error) {
	switch t {
	case domain.ContainerDrawer:
		return "cash_drawers", "drawer_id", nil
	case domain.ContainerBank:
		return "bank_accounts", "bank_account_id", nil
	default:
		return "", "", fmt.Errorf("%w: unknown container type %q", apperrors.ErrValidation, t)
	}
}

// lockContainerBalance takes the container's row lock and returns its cached
// balance. Every cached-balance mutation starts here so writes to the same
// container serialize.
func lockContainerBalance(ctx context.Context, q dbQuerier, ref domain.ContainerRef) (decimal.Decimal, error) {
	table, idCol, err := containerTable(ref.Type)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`SELECT balance FROM %s WHERE %s = $1 FOR UPDATE;`, table, idCol)
	var balance decimal.Decimal
	if err := q.QueryRow(ctx, query, ref.ID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock container "+ref.ID, err)
	}
	return balance, nil
}

// setContainerBalance writes the container's cached balance. Callers must
// hold the container's row lock.
func setContainerBalance(ctx context.Context, q dbQuerier, ref domain.ContainerRef, balance decimal.Decimal, userID string, now time.Time) error {
	table, idCol, err := containerTable(ref.Type)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET balance = $1, last_updated_at = $2, last_updated_by = $3 WHERE %s = $4;`, table, idCol)
	tag, err := q.Exec(ctx, query, balance, now, userID, ref.ID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for container "+ref.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// adjustLinkedAccountBalance applies delta to the accounting account linked
// to the container, if one exists. Unlinked containers are legal; the
// reconciliation scan reports them.
func adjustLinkedAccountBalance(ctx context.Context, q dbQuerier, ref domain.ContainerRef, delta decimal.Decimal, userID string, now time.Time) error {
	var accountID string
	err := q.QueryRow(ctx,
		`SELECT account_id FROM accounts WHERE container_type = $1 AND container_id = $2 FOR UPDATE;`,
		string(ref.Type), ref.ID,
	).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.NewAppError(500, "failed to lock linked account for container "+ref.ID, err)
	}

	_, err = q.Exec(ctx,
		`UPDATE accounts SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3 WHERE account_id = $4;`,
		delta, now, userID, accountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update linked account "+accountID, err)
	}
	return nil
}

// computeBalanceWith folds the container's opening balance and journal
// entries dated at or before asOf (all entries when asOf is nil).
func computeBalanceWith(ctx context.Context, q dbQuerier, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error) {
	table, idCol, err := containerTable(ref.Type)
	if err != nil {
		return decimal.Zero, err
	}

	openingQuery := fmt.Sprintf(`SELECT opening_balance FROM %s WHERE %s = $1;`, table, idCol)
	var opening decimal.Decimal
	if err := q.QueryRow(ctx, openingQuery, ref.ID).Scan(&opening); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to read opening balance for container "+ref.ID, err)
	}

	foldQuery := `
		SELECT COALESCE(SUM(CASE WHEN entry_type = 'INCOME' THEN amount ELSE -amount END), 0)
		FROM journal_entries
		WHERE container_type = $1 AND container_id = $2
	`
	args := []any{string(ref.Type), ref.ID}
	if asOf != nil {
		foldQuery += ` AND entry_date <= $3`
		args = append(args, *asOf)
	}
	foldQuery += `;`

	var delta decimal.Decimal
	if err := q.QueryRow(ctx, foldQuery, args...).Scan(&delta); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to fold journal for container "+ref.ID, err)
	}
	return opening.Add(delta), nil
}
