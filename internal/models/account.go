package models

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

// AccountingAccount maps to the accounts table. ContainerType/ContainerID are
// both null when the account has no operational container.
type AccountingAccount struct {
	AccountID      string          `db:"account_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrencyCode   string          `db:"currency_code"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	ContainerType  *ContainerType  `db:"container_type"`
	ContainerID    *string         `db:"container_id"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
