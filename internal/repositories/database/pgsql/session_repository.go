package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	"github.com/Dadminete/caja-ledger/internal/models"
	"github.com/Dadminete/caja-ledger/internal/utils/mapping"
	"github.com/Dadminete/caja-ledger/internal/utils/pagination"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for drawer session data.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepositoryFacade
var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionColumns = `session_id, drawer_id, status, opened_at, opened_by, opening_count, closed_at, closed_by, closing_count, expected_closing, variance`

func scanSession(row pgx.Row) (*domain.DrawerSession, error) {
	var m models.DrawerSession
	err := row.Scan(
		&m.SessionID,
		&m.DrawerID,
		&m.Status,
		&m.OpenedAt,
		&m.OpenedBy,
		&m.OpeningCount,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.ClosingCount,
		&m.ExpectedClosing,
		&m.Variance,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainSession(m)
	return &d, nil
}

// OpenSession inserts the session after verifying, under the drawer's row
// lock, that no open session exists. The partial unique index on
// drawer_sessions(drawer_id) WHERE status = 'OPEN' backs the same rule at
// the storage layer, so a racing opener loses cleanly.
func (r *PgxSessionRepository) OpenSession(ctx context.Context, session domain.DrawerSession) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	drawerRef := domain.ContainerRef{Type: domain.ContainerDrawer, ID: session.DrawerID}
	if _, err := lockContainerBalance(ctx, tx, drawerRef); err != nil {
		return fmt.Errorf("failed to lock drawer %s: %w", session.DrawerID, err)
	}

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT session_id FROM drawer_sessions WHERE drawer_id = $1 AND status = 'OPEN';`,
		session.DrawerID,
	).Scan(&existingID)
	if err == nil {
		return fmt.Errorf("%w: session %s is already open", apperrors.ErrDuplicate, existingID)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewAppError(500, "failed to check open session for drawer "+session.DrawerID, err)
	}

	m := mapping.ToModelSession(session)
	query := `
		INSERT INTO drawer_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.SessionID,
		m.DrawerID,
		m.Status,
		m.OpenedAt,
		m.OpenedBy,
		m.OpeningCount,
		m.ClosedAt,
		m.ClosedBy,
		m.ClosingCount,
		m.ExpectedClosing,
		m.Variance,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: drawer %s already has an open session", apperrors.ErrDuplicate, session.DrawerID)
		}
		return apperrors.NewAppError(500, "failed to insert session "+session.SessionID, err)
	}

	return r.Commit(ctx, tx)
}

// CloseSession closes the drawer's open session. The journal window is folded
// under the drawer's container row lock, so no entry can slip into the window
// between the fold and the commit.
func (r *PgxSessionRepository) CloseSession(ctx context.Context, drawerID string, closingCount decimal.Decimal, closedBy string, now time.Time) (*domain.DrawerSession, *domain.SessionTotals, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	drawerRef := domain.ContainerRef{Type: domain.ContainerDrawer, ID: drawerID}
	if _, err := lockContainerBalance(ctx, tx, drawerRef); err != nil {
		return nil, nil, fmt.Errorf("failed to lock drawer %s: %w", drawerID, err)
	}

	openQuery := `
		SELECT ` + sessionColumns + `
		FROM drawer_sessions
		WHERE drawer_id = $1 AND status = 'OPEN'
		FOR UPDATE;
	`
	session, err := scanSession(tx.QueryRow(ctx, openQuery, drawerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to find open session for drawer "+drawerID, err)
	}

	// Fold the drawer's journal activity over the session window. Entries are
	// attributed to the window by when they were posted, not their nominal
	// entry date.
	windowQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN entry_type = 'INCOME' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN entry_type = 'EXPENSE' THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM journal_entries
		WHERE container_type = 'DRAWER' AND container_id = $1 AND created_at >= $2 AND created_at <= $3;
	`
	var totals domain.SessionTotals
	err = tx.QueryRow(ctx, windowQuery, drawerID, session.OpenedAt, now).Scan(&totals.Income, &totals.Expense, &totals.EntryCount)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to fold session window for drawer "+drawerID, err)
	}

	session.ApplyClose(closingCount, totals.Income, totals.Expense, closedBy, now)

	updateQuery := `
		UPDATE drawer_sessions
		SET status = $1, closed_at = $2, closed_by = $3, closing_count = $4, expected_closing = $5, variance = $6
		WHERE session_id = $7 AND status = 'OPEN';
	`
	tag, err := tx.Exec(ctx, updateQuery,
		string(session.Status),
		session.ClosedAt,
		session.ClosedBy,
		session.ClosingCount,
		session.ExpectedClosing,
		session.Variance,
		session.SessionID,
	)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to close session "+session.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return session, &totals, nil
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.DrawerSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM drawer_sessions WHERE session_id = $1;`

	session, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find session by ID "+sessionID, err)
	}
	return session, nil
}

// FindOpenSessionByDrawer retrieves the open session for a drawer.
func (r *PgxSessionRepository) FindOpenSessionByDrawer(ctx context.Context, drawerID string) (*domain.DrawerSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM drawer_sessions WHERE drawer_id = $1 AND status = 'OPEN';`

	session, err := scanSession(r.Pool.QueryRow(ctx, query, drawerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open session for drawer "+drawerID, err)
	}
	return session, nil
}

// ListSessionsByDrawer retrieves a paginated session history for a drawer
// using token-based pagination, newest first.
func (r *PgxSessionRepository) ListSessionsByDrawer(ctx context.Context, drawerID string, limit int, nextToken *string) ([]domain.DrawerSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + sessionColumns + `
		FROM drawer_sessions
		WHERE drawer_id = $1
	`
	// Ordering must be stable across pages; session_id breaks timestamp ties.
	orderByClause := `ORDER BY opened_at DESC, session_id DESC`

	args := []any{drawerID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastOpenedAt, lastSessionID, decodeErr := pagination.DecodeDateIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (opened_at, session_id) < ($2, $3)`
		args = append(args, lastOpenedAt, lastSessionID)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sessions for drawer "+drawerID, err)
	}
	defer rows.Close()

	sessions := make([]models.DrawerSession, 0, fetchLimit)
	for rows.Next() {
		var m models.DrawerSession
		err := rows.Scan(
			&m.SessionID,
			&m.DrawerID,
			&m.Status,
			&m.OpenedAt,
			&m.OpenedBy,
			&m.OpeningCount,
			&m.ClosedAt,
			&m.ClosedBy,
			&m.ClosingCount,
			&m.ExpectedClosing,
			&m.Variance,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan session row for drawer "+drawerID, err)
		}
		sessions = append(sessions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating session rows for drawer "+drawerID, err)
	}

	var nextTokenVal *string
	if len(sessions) > limit {
		last := sessions[limit-1]
		token := pagination.EncodeDateIDToken(last.OpenedAt, last.SessionID)
		nextTokenVal = &token
		sessions = sessions[:limit]
	}

	return mapping.ToDomainSessionSlice(sessions), nextTokenVal, nil
}
