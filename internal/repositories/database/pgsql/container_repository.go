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

type PgxContainerRepository struct {
	pool *pgxpool.Pool
}

// newPgxContainerRepository creates a new repository for drawer and bank account data.
func newPgxContainerRepository(pool *pgxpool.Pool) portsrepo.ContainerRepositoryFacade {
	return &PgxContainerRepository{pool: pool}
}

// Ensure PgxContainerRepository implements portsrepo.ContainerRepositoryFacade
var _ portsrepo.ContainerRepositoryFacade = (*PgxContainerRepository)(nil)

// SaveDrawer inserts a new cash drawer.
func (r *PgxContainerRepository) SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error {
	m := mapping.ToModelDrawer(drawer)

	query := `
		INSERT INTO cash_drawers (drawer_id, name, location, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.DrawerID,
		m.Name,
		m.Location,
		m.OpeningBalance,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: drawer %s already exists", apperrors.ErrDuplicate, m.DrawerID)
		}
		return fmt.Errorf("failed to save drawer %s: %w", m.DrawerID, err)
	}
	return nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxContainerRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)

	query := `
		INSERT INTO bank_accounts (bank_account_id, name, bank_name, account_number, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BankAccountID,
		m.Name,
		m.BankName,
		m.AccountNumber,
		m.OpeningBalance,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bank account %s already exists", apperrors.ErrDuplicate, m.BankAccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.BankAccountID, err)
	}
	return nil
}

// FindDrawerByID retrieves a cash drawer by its ID.
func (r *PgxContainerRepository) FindDrawerByID(ctx context.Context, drawerID string) (*domain.CashDrawer, error) {
	query := `
		SELECT drawer_id, name, location, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_drawers
		WHERE drawer_id = $1;
	`
	var m models.CashDrawer
	err := r.pool.QueryRow(ctx, query, drawerID).Scan(
		&m.DrawerID,
		&m.Name,
		&m.Location,
		&m.OpeningBalance,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find drawer by ID "+drawerID, err)
	}

	d := mapping.ToDomainDrawer(m)
	return &d, nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxContainerRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, name, bank_name, account_number, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE bank_account_id = $1;
	`
	var m models.BankAccount
	err := r.pool.QueryRow(ctx, query, bankAccountID).Scan(
		&m.BankAccountID,
		&m.Name,
		&m.BankName,
		&m.AccountNumber,
		&m.OpeningBalance,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account by ID "+bankAccountID, err)
	}

	b := mapping.ToDomainBankAccount(m)
	return &b, nil
}

// FindContainer retrieves the kind-agnostic view of one container, with the
// linked accounting account id when a link exists.
func (r *PgxContainerRepository) FindContainer(ctx context.Context, ref domain.ContainerRef) (*domain.Container, error) {
	table, idCol, err := containerTable(ref.Type)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.name, c.opening_balance, c.balance, c.is_active, a.account_id
		FROM %s c
		LEFT JOIN accounts a ON a.container_type = $1 AND a.container_id = c.%s
		WHERE c.%s = $2;
	`, idCol, table, idCol, idCol)

	container := domain.Container{Ref: ref}
	err = r.pool.QueryRow(ctx, query, string(ref.Type), ref.ID).Scan(
		&container.Ref.ID,
		&container.Name,
		&container.OpeningBalance,
		&container.Balance,
		&container.IsActive,
		&container.AccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find container "+ref.ID, err)
	}
	return &container, nil
}

// ListDrawers retrieves cash drawers with offset pagination.
func (r *PgxContainerRepository) ListDrawers(ctx context.Context, limit int, offset int) ([]domain.CashDrawer, error) {
	query := `
		SELECT drawer_id, name, location, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_drawers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query drawers", err)
	}
	defer rows.Close()

	drawers := []domain.CashDrawer{}
	for rows.Next() {
		var m models.CashDrawer
		err := rows.Scan(
			&m.DrawerID,
			&m.Name,
			&m.Location,
			&m.OpeningBalance,
			&m.Balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan drawer row", err)
		}
		drawers = append(drawers, mapping.ToDomainDrawer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating drawer rows", err)
	}
	return drawers, nil
}

// ListBankAccounts retrieves bank accounts with offset pagination.
func (r *PgxContainerRepository) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	query := `
		SELECT bank_account_id, name, bank_name, account_number, opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.BankAccountID,
			&m.Name,
			&m.BankName,
			&m.AccountNumber,
			&m.OpeningBalance,
			&m.Balance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return accounts, nil
}

// ListContainers retrieves the kind-agnostic view of every container.
func (r *PgxContainerRepository) ListContainers(ctx context.Context) ([]domain.Container, error) {
	query := `
		SELECT 'DRAWER' AS container_type, d.drawer_id, d.name, d.opening_balance, d.balance, d.is_active, a.account_id
		FROM cash_drawers d
		LEFT JOIN accounts a ON a.container_type = 'DRAWER' AND a.container_id = d.drawer_id
		UNION ALL
		SELECT 'BANK_ACCOUNT', b.bank_account_id, b.name, b.opening_balance, b.balance, b.is_active, a.account_id
		FROM bank_accounts b
		LEFT JOIN accounts a ON a.container_type = 'BANK_ACCOUNT' AND a.container_id = b.bank_account_id
		ORDER BY 1, 3;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query containers", err)
	}
	defer rows.Close()

	containers := []domain.Container{}
	for rows.Next() {
		var c domain.Container
		var containerType string
		err := rows.Scan(
			&containerType,
			&c.Ref.ID,
			&c.Name,
			&c.OpeningBalance,
			&c.Balance,
			&c.IsActive,
			&c.AccountID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan container row", err)
		}
		c.Ref.Type = domain.ContainerType(containerType)
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating container rows", err)
	}
	return containers, nil
}

// DeactivateContainer marks a container inactive. Containers are never deleted.
func (r *PgxContainerRepository) DeactivateContainer(ctx context.Context, ref domain.ContainerRef, userID string, now time.Time) error {
	table, idCol, err := containerTable(ref.Type)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE %s = $3;`, table, idCol)
	tag, err := r.pool.Exec(ctx, query, now, userID, ref.ID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate container "+ref.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
