package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the state of a drawer session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// DrawerSession is one apertura/cierre cycle of a cash drawer. At most one
// session may be open per drawer at any time. The closing fields are nil
// while the session is open.
type DrawerSession struct {
	SessionID    string          `json:"sessionID"`
	DrawerID     string          `json:"drawerID"`
	Status       SessionStatus   `json:"status"`
	OpenedAt     time.Time       `json:"openedAt"`
	OpenedBy     string          `json:"openedBy"`
	OpeningCount decimal.Decimal `json:"openingCount"` // physically counted cash at apertura
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
	ClosedBy     *string         `json:"closedBy,omitempty"`
	// ClosingCount is the physically counted cash at cierre.
	ClosingCount *decimal.Decimal `json:"closingCount,omitempty"`
	// ExpectedClosing = openingCount + income - expense over the session window.
	ExpectedClosing *decimal.Decimal `json:"expectedClosing,omitempty"`
	// Variance = closingCount - expectedClosing. Recorded as business data for
	// investigation, never auto-corrected.
	Variance *decimal.Decimal `json:"variance,omitempty"`
}

// SessionTotals summarizes the journal activity of a session window.
type SessionTotals struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	EntryCount int             `json:"entryCount"`
}

// ExpectedClosing returns the cash a drawer should hold after a session
// window: the opening count plus income minus expense.
func ExpectedClosing(openingCount, income, expense decimal.Decimal) decimal.Decimal {
	return openingCount.Add(income).Sub(expense)
}

// ApplyClose transitions the session to CLOSED, computing the expected
// closing amount and the variance from the counted cash.
func (s *DrawerSession) ApplyClose(closingCount, income, expense decimal.Decimal, closedBy string, now time.Time) {
	expected := ExpectedClosing(s.OpeningCount, income, expense)
	variance := closingCount.Sub(expected)

	s.Status = SessionClosed
	s.ClosedAt = &now
	s.ClosedBy = &closedBy
	s.ClosingCount = &closingCount
	s.ExpectedClosing = &expected
	s.Variance = &variance
}
