package dto

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDrawerRequest is the payload for registering a cash drawer.
type CreateDrawerRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Location       string          `json:"location" binding:"max=200"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"dgte0"`
}

// CreateBankAccountRequest is the payload for registering a bank account.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	BankName       string          `json:"bankName" binding:"required,max=100"`
	AccountNumber  string          `json:"accountNumber" binding:"required,max=34"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"dgte0"`
}

// CreateAccountRequest is the payload for registering an accounting account,
// optionally linked to an existing operational container.
type CreateAccountRequest struct {
	Code           string               `json:"code" binding:"required,max=20"`
	Name           string               `json:"name" binding:"required,max=100"`
	AccountType    domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode   string               `json:"currencyCode" binding:"required,len=3"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Container      *ContainerRefRequest `json:"container" binding:"omitempty"`
}

// LinkContainerRequest is the payload for linking an accounting account to
// its operational container.
type LinkContainerRequest struct {
	Container ContainerRefRequest `json:"container" binding:"required"`
}

// CreateCategoryRequest is the payload for registering a movement category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}
