package mapping

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/models"
)

// ToModelAccount converts a domain AccountingAccount to a model AccountingAccount
func ToModelAccount(d domain.AccountingAccount) models.AccountingAccount {
	m := models.AccountingAccount{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		CurrencyCode:   d.CurrencyCode,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Container != nil {
		ct := models.ContainerType(d.Container.Type)
		cid := d.Container.ID
		m.ContainerType = &ct
		m.ContainerID = &cid
	}
	return m
}

// ToDomainAccount converts a model AccountingAccount to a domain AccountingAccount
func ToDomainAccount(m models.AccountingAccount) domain.AccountingAccount {
	d := domain.AccountingAccount{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrencyCode:   m.CurrencyCode,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ContainerType != nil && m.ContainerID != nil {
		d.Container = &domain.ContainerRef{
			Type: domain.ContainerType(*m.ContainerType),
			ID:   *m.ContainerID,
		}
	}
	return d
}
