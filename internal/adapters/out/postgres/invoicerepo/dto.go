// Package invoicerepo provides data transfer objects and mapping functions
// for invoice persistence.
package invoicerepo

import (
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO represents the database structure for persisting invoice
// aggregates.
type InvoiceDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	PartnerID   uuid.UUID `gorm:"type:uuid"`
	AmountTotal float64
	Status      int
}

// TableName specifies the database table name for invoice entities.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

func fromDomain(aggregate *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		PartnerID:   aggregate.PartnerID().Bytes(),
		AmountTotal: aggregate.AmountTotal(),
		Status:      int(aggregate.Status()),
	}
}

func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	return invoice.RestoreInvoice(id, orderID, partnerID, dto.AmountTotal, invoice.Status(dto.Status))
}
