package mapping

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/models"
)

// ToModelSession converts a domain DrawerSession to a model DrawerSession
func ToModelSession(d domain.DrawerSession) models.DrawerSession {
	return models.DrawerSession{
		SessionID:       d.SessionID,
		DrawerID:        d.DrawerID,
		Status:          models.SessionStatus(d.Status),
		OpenedAt:        d.OpenedAt,
		OpenedBy:        d.OpenedBy,
		OpeningCount:    d.OpeningCount,
		ClosedAt:        d.ClosedAt,
		ClosedBy:        d.ClosedBy,
		ClosingCount:    d.ClosingCount,
		ExpectedClosing: d.ExpectedClosing,
		Variance:        d.Variance,
	}
}

// ToDomainSession converts a model DrawerSession to a domain DrawerSession
func ToDomainSession(m models.DrawerSession) domain.DrawerSession {
	return domain.DrawerSession{
		SessionID:       m.SessionID,
		DrawerID:        m.DrawerID,
		Status:          domain.SessionStatus(m.Status),
		OpenedAt:        m.OpenedAt,
		OpenedBy:        m.OpenedBy,
		OpeningCount:    m.OpeningCount,
		ClosedAt:        m.ClosedAt,
		ClosedBy:        m.ClosedBy,
		ClosingCount:    m.ClosingCount,
		ExpectedClosing: m.ExpectedClosing,
		Variance:        m.Variance,
	}
}

// ToDomainSessionSlice converts a slice of model sessions to domain sessions
func ToDomainSessionSlice(ms []models.DrawerSession) []domain.DrawerSession {
	ds := make([]domain.DrawerSession, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSession(m)
	}
	return ds
}

// ToDomainRepair converts a model BalanceRepair to a domain BalanceRepair
func ToDomainRepair(m models.BalanceRepair) domain.BalanceRepair {
	return domain.BalanceRepair{
		RepairID: m.RepairID,
		Container: domain.ContainerRef{
			Type: domain.ContainerType(m.ContainerType),
			ID:   m.ContainerID,
		},
		OldBalance: m.OldBalance,
		NewBalance: m.NewBalance,
		RepairedBy: m.RepairedBy,
		RepairedAt: m.RepairedAt,
	}
}
