package models

import (
	"github.com/shopspring/decimal"
)

// ContainerType discriminates drawer rows from bank account rows.
type ContainerType string

const (
	ContainerDrawer ContainerType = "DRAWER"
	ContainerBank   ContainerType = "BANK_ACCOUNT"
)

// CashDrawer maps to the cash_drawers table.
type CashDrawer struct {
	DrawerID       string          `db:"drawer_id"`
	Name           string          `db:"name"`
	Location       string          `db:"location"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// BankAccount maps to the bank_accounts table.
type BankAccount struct {
	BankAccountID  string          `db:"bank_account_id"`
	Name           string          `db:"name"`
	BankName       string          `db:"bank_name"`
	AccountNumber  string          `db:"account_number"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
