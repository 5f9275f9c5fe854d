package services

import (
	"context"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/dto"
)

// SessionSvcFacade defines the drawer open/close lifecycle.
type SessionSvcFacade interface {
	// OpenSession starts a session (apertura) for the drawer. Fails with
	// ErrSessionAlreadyOpen when the drawer already has an open session.
	OpenSession(ctx context.Context, drawerID string, req dto.OpenSessionRequest, userID string) (*domain.DrawerSession, error)

	// CloseSession ends the drawer's open session (cierre), computing the
	// expected closing amount from the journal window and recording the
	// variance. Fails with ErrNoOpenSession when none exists.
	CloseSession(ctx context.Context, drawerID string, req dto.CloseSessionRequest, userID string) (*domain.DrawerSession, *domain.SessionTotals, error)

	// GetOpenSession retrieves the drawer's open session, if any.
	GetOpenSession(ctx context.Context, drawerID string) (*domain.DrawerSession, error)

	// GetSessionHistory retrieves a paginated session history for a drawer.
	GetSessionHistory(ctx context.Context, drawerID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error)
}
