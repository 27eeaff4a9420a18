package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateSaleItemInput represents a line item in a checkout request.
// Amounts cross the API boundary as strings to avoid float drift.
type CreateSaleItemInput struct {
	ProductID       *uuid.UUID      `json:"product_id"`
	Name            string          `json:"name" binding:"required,min=1,max=200"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       string          `json:"unit_price" binding:"required,money"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
}

// PaymentInput represents the cash/UPI/credit split for a checkout
type PaymentInput struct {
	Cash   string `json:"cash" binding:"omitempty,money"`
	UPI    string `json:"upi" binding:"omitempty,money"`
	Credit string `json:"credit" binding:"omitempty,money"`
}

// CheckoutRequest represents a request to finalize a sale
type CheckoutRequest struct {
	CustomerID          uuid.UUID             `json:"customer_id" binding:"required"`
	Items               []CreateSaleItemInput `json:"items" binding:"required,min=1"`
	DiscountAmount      string                `json:"discount_amount" binding:"omitempty,money"`
	DiscountPercent     *decimal.Decimal      `json:"discount_percent"`
	Payment             PaymentInput          `json:"payment"`
	OverrideCreditLimit bool                  `json:"override_credit_limit"`
	InvoiceDate         *time.Time            `json:"invoice_date"`
	Notes               string                `json:"notes"`
}

// SaleItemResponse represents a line item in API responses
type SaleItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       string          `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	TaxableAmount   string          `json:"taxable_amount"`
	TaxAmount       string          `json:"tax_amount"`
	CGSTAmount      string          `json:"cgst_amount"`
	SGSTAmount      string          `json:"sgst_amount"`
	LineTotal       string          `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID             uuid.UUID          `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     uuid.UUID          `json:"customer_id"`
	CustomerName   string             `json:"customer_name"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       string             `json:"subtotal"`
	DiscountAmount string             `json:"discount_amount"`
	TaxAmount      string             `json:"tax_amount"`
	CGSTAmount     string             `json:"cgst_amount"`
	SGSTAmount     string             `json:"sgst_amount"`
	TotalAmount    string             `json:"total_amount"`
	CashAmount     string             `json:"cash_amount"`
	UPIAmount      string             `json:"upi_amount"`
	CreditAmount   string             `json:"credit_amount"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	InvoiceDate    time.Time          `json:"invoice_date"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleListItemResponse is the trimmed shape for sale listings
type SaleListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	TotalAmount   string    `json:"total_amount"`
	CreditAmount  string    `json:"credit_amount"`
	PaymentStatus string    `json:"payment_status"`
	InvoiceDate   time.Time `json:"invoice_date"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSaleItemResponse converts a domain line item to its response shape
func ToSaleItemResponse(item billing.LineItem) SaleItemResponse {
	return SaleItemResponse{
		ID:              item.ID,
		ProductID:       item.ProductID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice.StringFixed(),
		DiscountPercent: item.DiscountPercent,
		TaxRatePercent:  item.TaxRatePercent,
		TaxableAmount:   item.TaxableAmount.StringFixed(),
		TaxAmount:       item.TaxAmount.StringFixed(),
		CGSTAmount:      item.CGSTAmount.StringFixed(),
		SGSTAmount:      item.SGSTAmount.StringFixed(),
		LineTotal:       item.LineTotal.StringFixed(),
	}
}

// ToSaleResponse converts a domain sale to its response shape
func ToSaleResponse(sale *billing.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, ToSaleItemResponse(item))
	}

	return SaleResponse{
		ID:             sale.ID,
		InvoiceNumber:  sale.InvoiceNumber,
		CustomerID:     sale.CustomerID,
		CustomerName:   sale.CustomerName,
		Items:          items,
		Subtotal:       sale.Subtotal.StringFixed(),
		DiscountAmount: sale.DiscountAmount.StringFixed(),
		TaxAmount:      sale.TaxAmount.StringFixed(),
		CGSTAmount:     sale.CGSTAmount.StringFixed(),
		SGSTAmount:     sale.SGSTAmount.StringFixed(),
		TotalAmount:    sale.TotalAmount.StringFixed(),
		CashAmount:     sale.CashAmount.StringFixed(),
		UPIAmount:      sale.UPIAmount.StringFixed(),
		CreditAmount:   sale.CreditAmount.StringFixed(),
		PaymentMethod:  string(sale.PaymentMethod),
		PaymentStatus:  string(sale.PaymentStatus),
		InvoiceDate:    sale.InvoiceDate,
		PaidAt:         sale.PaidAt,
		Notes:          sale.Notes,
		CreatedAt:      sale.CreatedAt,
	}
}

// ToSaleListItemResponse converts a domain sale to its list shape
func ToSaleListItemResponse(sale *billing.Sale) SaleListItemResponse {
	return SaleListItemResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerName:  sale.CustomerName,
		TotalAmount:   sale.TotalAmount.StringFixed(),
		CreditAmount:  sale.CreditAmount.StringFixed(),
		PaymentStatus: string(sale.PaymentStatus),
		InvoiceDate:   sale.InvoiceDate,
	}
}
