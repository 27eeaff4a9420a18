package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the legacy invoice projection written alongside every sale.
// Older reporting tools read the invoices/invoice_items pair directly, so the
// persistence adapter keeps both shapes consistent within one transaction.
type InvoiceModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InvoiceDate   time.Time       `gorm:"not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is a line of the legacy invoice projection.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// InvoiceProjectionFromSale builds the legacy invoice rows for a finalized sale.
func InvoiceProjectionFromSale(sale *billing.Sale) (InvoiceModel, []InvoiceItemModel) {
	invoice := InvoiceModel{
		ID:            uuid.New(),
		SaleID:        sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerID:    sale.CustomerID,
		CustomerName:  sale.CustomerName,
		Subtotal:      sale.Subtotal.Amount(),
		Discount:      sale.DiscountAmount.Amount(),
		CGST:          sale.CGSTAmount.Amount(),
		SGST:          sale.SGSTAmount.Amount(),
		GrandTotal:    sale.TotalAmount.Amount(),
		InvoiceDate:   sale.InvoiceDate,
		CreatedAt:     time.Now(),
	}

	items := make([]InvoiceItemModel, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, InvoiceItemModel{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount(),
			TaxRate:     item.TaxRatePercent,
			TaxAmount:   item.TaxAmount.Amount(),
			LineTotal:   item.LineTotal.Amount(),
		})
	}
	return invoice, items
}

// InvoiceSequenceModel is the per-(financial year, prefix) invoice counter row.
// The counter is advanced with a single UPDATE inside the checkout transaction
// so two concurrent checkouts can never draw the same number.
type InvoiceSequenceModel struct {
	FinancialYear string    `gorm:"type:varchar(5);primaryKey"`
	Prefix        string    `gorm:"type:varchar(10);primaryKey"`
	LastSequence  int       `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}

// SettingModel is a key/value row for shop-editable settings such as the
// invoice prefix and the shop GSTIN.
type SettingModel struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	Value     string    `gorm:"type:varchar(500);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}
