package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// AccountingAccount is the bookkeeping record ("cuenta contable") optionally
// linked to one operational container. Its cached balance must always be
// derivable from the opening balance plus the journal entries addressed to the
// linked container; divergence is drift, detected by reconciliation, never a
// crash.
type AccountingAccount struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"` // user-facing ledger code, unique
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"` // cached; mirrored from the linked container
	Container      *ContainerRef   `json:"container,omitempty"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
