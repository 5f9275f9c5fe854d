package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

var (
	ErrSessionAlreadyOpen = errors.New("drawer already has an open session")
	ErrNoOpenSession      = errors.New("drawer has no open session")
	ErrDrawerNotFound     = errors.New("drawer not found")
	ErrDrawerInactive     = errors.New("drawer is inactive")
)

// sessionService implements the drawer open/close lifecycle (apertura and
// cierre with variance against the counted cash).
type sessionService struct {
	sessionRepo   portsrepo.SessionRepositoryFacade
	containerRepo portsrepo.ContainerRepositoryFacade
}

// NewSessionService creates a new session service.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade, containerRepo portsrepo.ContainerRepositoryFacade) portssvc.SessionSvcFacade {
	return &sessionService{
		sessionRepo:   sessionRepo,
		containerRepo: containerRepo,
	}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// OpenSession starts a session for the drawer.
// Implements portssvc.SessionSvcFacade
func (s *sessionService) OpenSession(ctx context.Context, drawerID string, req dto.OpenSessionRequest, userID string) (*domain.DrawerSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningCount.IsNegative() {
		return nil, fmt.Errorf("%w: opening count cannot be negative", apperrors.ErrValidation)
	}

	drawer, err := s.containerRepo.FindDrawerByID(ctx, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDrawerNotFound, drawerID)
		}
		return nil, fmt.Errorf("failed to fetch drawer: %w", err)
	}
	if !drawer.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrDrawerInactive, drawerID)
	}

	session := domain.DrawerSession{
		SessionID:    uuid.NewString(),
		DrawerID:     drawerID,
		Status:       domain.SessionOpen,
		OpenedAt:     time.Now().UTC(),
		OpenedBy:     userID,
		OpeningCount: req.OpeningCount,
	}

	if err := s.sessionRepo.OpenSession(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyOpen, drawerID)
		}
		logger.Error("Failed to open session", slog.String("error", err.Error()), slog.String("drawer_id", drawerID))
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	logger.Info("Session opened",
		slog.String("session_id", session.SessionID),
		slog.String("drawer_id", drawerID),
		slog.String("opening_count", req.OpeningCount.String()),
	)
	return &session, nil
}

// CloseSession ends the drawer's open session and records the variance.
// Implements portssvc.SessionSvcFacade
func (s *sessionService) CloseSession(ctx context.Context, drawerID string, req dto.CloseSessionRequest, userID string) (*domain.DrawerSession, *domain.SessionTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ClosingCount.IsNegative() {
		return nil, nil, fmt.Errorf("%w: closing count cannot be negative", apperrors.ErrValidation)
	}

	if _, err := s.containerRepo.FindDrawerByID(ctx, drawerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrDrawerNotFound, drawerID)
		}
		return nil, nil, fmt.Errorf("failed to fetch drawer: %w", err)
	}

	session, totals, err := s.sessionRepo.CloseSession(ctx, drawerID, req.ClosingCount, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoOpenSession, drawerID)
		}
		logger.Error("Failed to close session", slog.String("error", err.Error()), slog.String("drawer_id", drawerID))
		return nil, nil, fmt.Errorf("failed to close session: %w", err)
	}

	attrs := []any{
		slog.String("session_id", session.SessionID),
		slog.String("drawer_id", drawerID),
		slog.String("expected_closing", session.ExpectedClosing.String()),
		slog.String("closing_count", req.ClosingCount.String()),
		slog.String("variance", session.Variance.String()),
	}
	if session.Variance != nil && !session.Variance.Equal(decimal.Zero) {
		logger.Warn("Session closed with variance", attrs...)
	} else {
		logger.Info("Session closed", attrs...)
	}
	return session, totals, nil
}

// GetOpenSession retrieves the drawer's open session, if any.
// Implements portssvc.SessionSvcFacade
func (s *sessionService) GetOpenSession(ctx context.Context, drawerID string) (*domain.DrawerSession, error) {
	session, err := s.sessionRepo.FindOpenSessionByDrawer(ctx, drawerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoOpenSession, drawerID)
		}
		return nil, fmt.Errorf("failed to find open session for drawer %s: %w", drawerID, err)
	}
	return session, nil
}

// GetSessionHistory retrieves a paginated session history for a drawer.
// Implements portssvc.SessionSvcFacade
func (s *sessionService) GetSessionHistory(ctx context.Context, drawerID string, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	sessions, nextToken, err := s.sessionRepo.ListSessionsByDrawer(ctx, drawerID, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list sessions from repository", "error", err, "drawer_id", drawerID)
		return nil, fmt.Errorf("failed to retrieve sessions: %w", err)
	}

	return &dto.ListSessionsResponse{
		Sessions:  dto.ToSessionResponses(sessions),
		NextToken: nextToken,
	}, nil
}
