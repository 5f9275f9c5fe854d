package dto

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// ContainerRefRequest identifies one container in a request body.
type ContainerRefRequest struct {
	Type domain.ContainerType `json:"type" binding:"required,oneof=DRAWER BANK_ACCOUNT"`
	ID   string               `json:"id" binding:"required,uuid"`
}

// ToDomain converts the request reference to a domain ContainerRef.
func (r ContainerRefRequest) ToDomain() domain.ContainerRef {
	return domain.ContainerRef{Type: r.Type, ID: r.ID}
}
