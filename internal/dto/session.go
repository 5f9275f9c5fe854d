package dto

import (
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest is the payload for an apertura.
type OpenSessionRequest struct {
	OpeningCount decimal.Decimal `json:"openingCount" binding:"dgte0"`
}

// CloseSessionRequest is the payload for a cierre.
type CloseSessionRequest struct {
	ClosingCount decimal.Decimal `json:"closingCount" binding:"dgte0"`
}

// SessionResponse is the API representation of a drawer session.
type SessionResponse struct {
	SessionID       string               `json:"sessionID"`
	DrawerID        string               `json:"drawerID"`
	Status          domain.SessionStatus `json:"status"`
	OpenedAt        time.Time            `json:"openedAt"`
	OpenedBy        string               `json:"openedBy"`
	OpeningCount    decimal.Decimal      `json:"openingCount"`
	ClosedAt        *time.Time           `json:"closedAt,omitempty"`
	ClosedBy        *string              `json:"closedBy,omitempty"`
	ClosingCount    *decimal.Decimal     `json:"closingCount,omitempty"`
	ExpectedClosing *decimal.Decimal     `json:"expectedClosing,omitempty"`
	Variance        *decimal.Decimal     `json:"variance,omitempty"`
}

// ToSessionResponse converts a domain session to its API representation.
func ToSessionResponse(s *domain.DrawerSession) SessionResponse {
	return SessionResponse{
		SessionID:       s.SessionID,
		DrawerID:        s.DrawerID,
		Status:          s.Status,
		OpenedAt:        s.OpenedAt,
		OpenedBy:        s.OpenedBy,
		OpeningCount:    s.OpeningCount,
		ClosedAt:        s.ClosedAt,
		ClosedBy:        s.ClosedBy,
		ClosingCount:    s.ClosingCount,
		ExpectedClosing: s.ExpectedClosing,
		Variance:        s.Variance,
	}
}

// ToSessionResponses converts a slice of domain sessions.
func ToSessionResponses(sessions []domain.DrawerSession) []SessionResponse {
	out := make([]SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = ToSessionResponse(&sessions[i])
	}
	return out
}

// CloseSessionResponse is the cierre result: the closed session plus the
// journal activity of the window.
type CloseSessionResponse struct {
	Session SessionResponse      `json:"session"`
	Totals  domain.SessionTotals `json:"totals"`
}

// ListSessionsParams holds pagination parameters for session history.
type ListSessionsParams struct {
	Limit     int
	NextToken *string
}

// ListSessionsResponse is a page of sessions plus the token for the next page.
type ListSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	NextToken *string           `json:"nextToken,omitempty"`
}
