package mapping

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/models"
)

// ToModelDrawer converts a domain CashDrawer to a model CashDrawer
func ToModelDrawer(d domain.CashDrawer) models.CashDrawer {
	return models.CashDrawer{
		DrawerID:       d.DrawerID,
		Name:           d.Name,
		Location:       d.Location,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDrawer converts a model CashDrawer to a domain CashDrawer
func ToDomainDrawer(m models.CashDrawer) domain.CashDrawer {
	return domain.CashDrawer{
		DrawerID:       m.DrawerID,
		Name:           m.Name,
		Location:       m.Location,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		Name:           d.Name,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		Name:           m.Name,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
