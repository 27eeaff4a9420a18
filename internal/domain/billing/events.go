package billing

import (
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// SaleFinalizedEvent is published when a sale is finalized and an invoice
// number has been assigned
type SaleFinalizedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string
	CustomerID    string
	TotalAmount   valueobject.Money
	CreditAmount  valueobject.Money
	PaymentStatus PaymentStatus
}

// NewSaleFinalizedEvent creates a new sale finalized event
func NewSaleFinalizedEvent(sale *Sale) *SaleFinalizedEvent {
	return &SaleFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.finalized", "Sale", sale.ID),
		InvoiceNumber:   sale.InvoiceNumber,
		CustomerID:      sale.CustomerID.String(),
		TotalAmount:     sale.TotalAmount,
		CreditAmount:    sale.CreditAmount,
		PaymentStatus:   sale.PaymentStatus,
	}
}

// SalePaymentRecordedEvent is published when a partial payment is applied
// against a sale's outstanding credit
type SalePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string
	Amount        valueobject.Money
	Outstanding   valueobject.Money
}

// NewSalePaymentRecordedEvent creates a new payment recorded event
func NewSalePaymentRecordedEvent(sale *Sale, amount valueobject.Money) *SalePaymentRecordedEvent {
	return &SalePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.payment_recorded", "Sale", sale.ID),
		InvoiceNumber:   sale.InvoiceNumber,
		Amount:          amount,
		Outstanding:     sale.CreditAmount,
	}
}

// SalePaidEvent is published when a sale's outstanding credit reaches zero
type SalePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string
}

// NewSalePaidEvent creates a new sale paid event
func NewSalePaidEvent(sale *Sale) *SalePaidEvent {
	return &SalePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("sale.paid", "Sale", sale.ID),
		InvoiceNumber:   sale.InvoiceNumber,
	}
}
