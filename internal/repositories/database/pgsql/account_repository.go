package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	"github.com/Dadminete/caja-ledger/internal/models"
	"github.com/Dadminete/caja-ledger/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for accounting account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, currency_code, opening_balance, balance, container_type, container_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.AccountingAccount, error) {
	var m models.AccountingAccount
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.OpeningBalance,
		&m.Balance,
		&m.ContainerType,
		&m.ContainerID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// SaveAccount inserts a new accounting account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.AccountingAccount) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.OpeningBalance,
		m.Balance,
		m.ContainerType,
		m.ContainerID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with code %s or container link already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccountingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return account, nil
}

// FindAccountByCode retrieves an account by its ledger code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.AccountingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code "+code, err)
	}
	return account, nil
}

// FindAccountByContainer retrieves the account linked to the given container.
func (r *PgxAccountRepository) FindAccountByContainer(ctx context.Context, ref domain.ContainerRef) (*domain.AccountingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE container_type = $1 AND container_id = $2;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, string(ref.Type), ref.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account for container "+ref.ID, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts with offset pagination.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountingAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.AccountingAccount{}
	for rows.Next() {
		var m models.AccountingAccount
		err := rows.Scan(
			&m.AccountID,
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.CurrencyCode,
			&m.OpeningBalance,
			&m.Balance,
			&m.ContainerType,
			&m.ContainerID,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// LinkContainer sets the account's operational container link. The partial
// unique index on (container_type, container_id) rejects double links.
func (r *PgxAccountRepository) LinkContainer(ctx context.Context, accountID string, ref domain.ContainerRef, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET container_type = $1, container_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $5;
	`
	tag, err := r.pool.Exec(ctx, query, string(ref.Type), ref.ID, now, userID, accountID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: container %s is already linked", apperrors.ErrDuplicate, ref.ID)
		}
		return apperrors.NewAppError(500, "failed to link container to account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `UPDATE accounts SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE account_id = $3;`

	tag, err := r.pool.Exec(ctx, query, now, userID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
