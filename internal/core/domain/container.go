package domain

import (
	"github.com/shopspring/decimal"
)

// ContainerType discriminates the two kinds of operational money containers.
type ContainerType string

const (
	ContainerDrawer ContainerType = "DRAWER"
	ContainerBank   ContainerType = "BANK_ACCOUNT"
)

// ContainerRef identifies exactly one operational container, either a cash
// drawer or a bank account. Journal entries and transfers address containers
// through this reference.
type ContainerRef struct {
	Type ContainerType `json:"type"`
	ID   string        `json:"id"`
}

// IsZero reports whether the reference is empty.
func (r ContainerRef) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Equal reports whether two references address the same container.
func (r ContainerRef) Equal(other ContainerRef) bool {
	return r.Type == other.Type && r.ID == other.ID
}

// Less orders references by (type, id). Row locks on multiple containers are
// always taken in this order so two concurrent transfers cannot deadlock.
func (r ContainerRef) Less(other ContainerRef) bool {
	if r.Type != other.Type {
		return r.Type < other.Type
	}
	return r.ID < other.ID
}

// CashDrawer is a physical cash register ("caja") tracked as an operational
// container. Drawers are created at setup time and soft-deactivated, never
// deleted.
type CashDrawer struct {
	DrawerID       string          `json:"drawerID"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"` // cached; the journal is authoritative
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Ref returns the container reference for this drawer.
func (d CashDrawer) Ref() ContainerRef {
	return ContainerRef{Type: ContainerDrawer, ID: d.DrawerID}
}

// BankAccount is a bank account tracked as an operational container.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"` // cached; the journal is authoritative
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// Ref returns the container reference for this bank account.
func (b BankAccount) Ref() ContainerRef {
	return ContainerRef{Type: ContainerBank, ID: b.BankAccountID}
}

// Container is the kind-agnostic view of a drawer or bank account used by
// balance computation and reconciliation. AccountID is nil when no accounting
// account links to the container; that is a legal but degraded state the
// reconciliation service surfaces.
type Container struct {
	Ref            ContainerRef    `json:"ref"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	AccountID      *string         `json:"accountID,omitempty"`
}
