package repositories

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionReader defines read operations for drawer sessions
type SessionReader interface {
	// FindSessionByID retrieves a specific session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.DrawerSession, error)

	// FindOpenSessionByDrawer retrieves the open session for a drawer, or
	// ErrNotFound when the drawer has none.
	FindOpenSessionByDrawer(ctx context.Context, drawerID string) (*domain.DrawerSession, error)

	// ListSessionsByDrawer retrieves a paginated session history for a drawer
	// using token-based pagination, newest first.
	ListSessionsByDrawer(ctx context.Context, drawerID string, limit int, nextToken *string) ([]domain.DrawerSession, *string, error)
}

// SessionWriter defines write operations for drawer sessions
type SessionWriter interface {
	// OpenSession inserts the session after verifying, under the drawer's row
	// lock, that the drawer is active and has no open session. Returns
	// ErrDuplicate when an open session already exists.
	OpenSession(ctx context.Context, session domain.DrawerSession) error

	// CloseSession closes the drawer's open session. The journal window fold
	// runs under the drawer's container row lock so that no entry can land in
	// the window between the read and the commit. Returns ErrNotFound when
	// the drawer has no open session.
	CloseSession(ctx context.Context, drawerID string, closingCount decimal.Decimal, closedBy string, now time.Time) (*domain.DrawerSession, *domain.SessionTotals, error)
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
