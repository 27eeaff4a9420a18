package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment status of a sale's invoice
type PaymentStatus string

const (
	PaymentStatusPaid          PaymentStatus = "PAID"
	PaymentStatusCredit        PaymentStatus = "CREDIT"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusUnpaid        PaymentStatus = "UNPAID"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusCredit, PaymentStatusPartiallyPaid, PaymentStatusUnpaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status.
// PAID is terminal; a fully paid invoice cannot revert.
func (s PaymentStatus) CanApplyPayment() bool {
	switch s {
	case PaymentStatusCredit, PaymentStatusUnpaid, PaymentStatusPartiallyPaid:
		return true
	}
	return false
}

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodCredit PaymentMethod = "CREDIT"
	PaymentMethodMixed  PaymentMethod = "MIXED"
)

// PaymentBreakdown splits a sale's total across cash, UPI, and deferred credit
type PaymentBreakdown struct {
	Cash   valueobject.Money
	UPI    valueobject.Money
	Credit valueobject.Money
}

// Total returns the sum of the three components
func (p PaymentBreakdown) Total() valueobject.Money {
	return p.Cash.Add(p.UPI).Add(p.Credit)
}

// Validate checks that no component is negative
func (p PaymentBreakdown) Validate() error {
	if p.Cash.IsNegative() || p.UPI.IsNegative() || p.Credit.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Payment amounts cannot be negative")
	}
	return nil
}

// Method derives the payment method from the nonzero components
func (p PaymentBreakdown) Method() PaymentMethod {
	nonzero := 0
	method := PaymentMethodCash
	if p.Cash.IsPositive() {
		nonzero++
		method = PaymentMethodCash
	}
	if p.UPI.IsPositive() {
		nonzero++
		method = PaymentMethodUPI
	}
	if p.Credit.IsPositive() {
		nonzero++
		method = PaymentMethodCredit
	}
	if nonzero > 1 {
		return PaymentMethodMixed
	}
	return method
}

// LineItem represents a single product line on a sale. Items reference a
// catalog product or carry a free-text name for ad-hoc sales. Derived amounts
// are computed once at construction and are immutable after the sale is
// finalized.
type LineItem struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	SaleID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID       *uuid.UUID        `gorm:"type:uuid"` // nil for ad-hoc items
	Name            string            `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal   `gorm:"type:decimal(12,3);not null"`
	UnitPrice       valueobject.Money `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0"`
	TaxRatePercent  decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0"`
	TaxableAmount   valueobject.Money `gorm:"type:decimal(12,2);not null"`
	TaxAmount       valueobject.Money `gorm:"type:decimal(12,2);not null"`
	CGSTAmount      valueobject.Money `gorm:"type:decimal(12,2);not null"`
	SGSTAmount      valueobject.Money `gorm:"type:decimal(12,2);not null"`
	LineTotal       valueobject.Money `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "sale_items"
}

// NewLineItem creates a line item. Catalog prices are tax-exclusive, so the
// per-line tax is computed in exclusive mode on the discounted line value.
func NewLineItem(productID *uuid.UUID, name string, quantity decimal.Decimal, unitPrice valueobject.Money, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}

	gross := unitPrice.Multiply(quantity)
	discounted := gross.ApplyDiscount(discountPercent)
	breakup, err := ComputeExclusive(discounted, taxRatePercent)
	if err != nil {
		return nil, err
	}

	return &LineItem{
		ID:              uuid.New(),
		ProductID:       productID,
		Name:            name,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxRatePercent:  taxRatePercent,
		TaxableAmount:   breakup.Taxable,
		TaxAmount:       breakup.Tax,
		CGSTAmount:      breakup.CGST,
		SGSTAmount:      breakup.SGST,
		LineTotal:       breakup.Total,
	}, nil
}

// Sale is the aggregate root for a single economic sale event. It owns the
// line items, the sale-level discount, the GST totals, and the payment
// breakdown, and it carries the invoice number once one is assigned.
//
// The legacy store persists this aggregate twice (sales+sale_items and
// invoices+invoice_items); keeping the two shapes consistent is the
// persistence adapter's job, not the aggregate's.
type Sale struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string            `gorm:"type:varchar(50);uniqueIndex"`
	CustomerID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName   string            `gorm:"type:varchar(200);not null"`
	Items          []LineItem        `gorm:"foreignKey:SaleID"`
	Subtotal       valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"` // sum of line taxable amounts
	DiscountAmount valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"` // sale-level discount on the subtotal
	TaxAmount      valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	CGSTAmount     valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	SGSTAmount     valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	CashAmount     valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	UPIAmount      valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	CreditAmount   valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"` // outstanding credit; reduced by payments
	PaymentMethod  PaymentMethod     `gorm:"type:varchar(20)"`
	PaymentStatus  PaymentStatus     `gorm:"type:varchar(20);not null;index"`
	InvoiceDate    time.Time         `gorm:"not null;index"`
	Finalized      bool              `gorm:"not null;default:false"`
	PaidAt         *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a draft sale for a customer
func NewSale(customerID uuid.UUID, customerName string, invoiceDate time.Time) (*Sale, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	z := valueobject.Zero()
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]LineItem, 0),
		Subtotal:          z,
		DiscountAmount:    z,
		TaxAmount:         z,
		CGSTAmount:        z,
		SGSTAmount:        z,
		TotalAmount:       z,
		CashAmount:        z,
		UPIAmount:         z,
		CreditAmount:      z,
		PaymentStatus:     PaymentStatusUnpaid,
		InvoiceDate:       invoiceDate,
	}, nil
}

// AddItem adds a line item to a draft sale
func (s *Sale) AddItem(productID *uuid.UUID, name string, quantity decimal.Decimal, unitPrice valueobject.Money, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if s.Finalized {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a finalized sale")
	}

	item, err := NewLineItem(productID, name, quantity, unitPrice, discountPercent, taxRatePercent)
	if err != nil {
		return nil, err
	}
	item.SaleID = s.ID

	s.Items = append(s.Items, *item)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return item, nil
}

// ApplyFlatDiscount applies a flat sale-level discount amount
func (s *Sale) ApplyFlatDiscount(discount valueobject.Money) error {
	if s.Finalized {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a finalized sale")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(s.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	s.DiscountAmount = discount.RoundStorage()
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return nil
}

// ApplyDiscountPercent applies a percentage sale-level discount
func (s *Sale) ApplyDiscountPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	return s.ApplyFlatDiscount(s.Subtotal.CalculatePercentage(percent))
}

// recalculateTotals rebuilds the sale totals from the line items and the
// sale-level discount. Tax is scaled by the discount ratio
// (subtotal - discount) / subtotal so that tax is charged on the net amount;
// a zero subtotal is treated as ratio 1.
func (s *Sale) recalculateTotals() {
	subtotal := valueobject.Zero()
	tax := valueobject.Zero()
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.TaxableAmount)
		tax = tax.Add(item.TaxAmount)
	}
	s.Subtotal = subtotal

	ratio := decimal.NewFromInt(1)
	if subtotal.IsPositive() && s.DiscountAmount.IsPositive() {
		ratio = subtotal.Subtract(s.DiscountAmount).Amount().Div(subtotal.Amount())
	}

	s.TaxAmount = tax.Multiply(ratio).RoundStorage()
	s.CGSTAmount, s.SGSTAmount = splitGST(s.TaxAmount)
	s.TotalAmount = subtotal.Subtract(s.DiscountAmount).Add(s.TaxAmount)
}

// AssignInvoiceNumber sets the invoice number. It may be called again before
// the sale is persisted so the orchestrator can retry on a numbering conflict;
// once the sale is saved the number is immutable.
func (s *Sale) AssignInvoiceNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	s.InvoiceNumber = number
	s.UpdatedAt = time.Now()
	return nil
}

// Finalize validates the payment breakdown against the sale total and locks
// the sale. The breakdown must cover the total penny-exactly; anything else
// is a PAYMENT_MISMATCH and nothing is persisted.
func (s *Sale) Finalize(payment PaymentBreakdown) error {
	if s.Finalized {
		return shared.NewDomainError("INVALID_STATE", "Sale is already finalized")
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot finalize a sale without items")
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	if !payment.Total().Equals(s.TotalAmount) {
		return shared.NewDomainError(shared.CodePaymentMismatch,
			fmt.Sprintf("Payment breakdown %s does not equal sale total %s",
				payment.Total().StringFixed(), s.TotalAmount.StringFixed()))
	}

	s.CashAmount = payment.Cash
	s.UPIAmount = payment.UPI
	s.CreditAmount = payment.Credit
	s.PaymentMethod = payment.Method()

	switch {
	case payment.Credit.IsZero():
		now := time.Now()
		s.PaymentStatus = PaymentStatusPaid
		s.PaidAt = &now
	case payment.Credit.Equals(s.TotalAmount):
		s.PaymentStatus = PaymentStatusCredit
	default:
		s.PaymentStatus = PaymentStatusPartiallyPaid
	}

	s.Finalized = true
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleFinalizedEvent(s))

	return nil
}

// OutstandingCredit returns the credit amount still owed on this sale
func (s *Sale) OutstandingCredit() valueobject.Money {
	return s.CreditAmount
}

// ApplyPayment reduces the outstanding credit by the payment amount and
// advances the payment status. Overpayment is rejected here as an invariant,
// not delegated to the caller. The status machine is monotonic:
// UNPAID/CREDIT -> PARTIALLY_PAID -> PAID, and PAID is terminal.
func (s *Sale) ApplyPayment(amount valueobject.Money) error {
	if !s.Finalized {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply payment to an unfinalized sale")
	}
	if !s.PaymentStatus.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot apply payment to invoice in %s status", s.PaymentStatus))
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Payment amount must be positive")
	}
	if amount.GreaterThan(s.CreditAmount) {
		return shared.NewDomainError(shared.CodeOverpaymentRejected,
			fmt.Sprintf("Payment %s exceeds outstanding credit %s on invoice %s",
				amount.StringFixed(), s.CreditAmount.StringFixed(), s.InvoiceNumber))
	}

	s.CreditAmount = s.CreditAmount.Subtract(amount)
	if s.CreditAmount.IsZero() {
		now := time.Now()
		s.PaymentStatus = PaymentStatusPaid
		s.PaidAt = &now
		s.AddDomainEvent(NewSalePaidEvent(s))
	} else {
		s.PaymentStatus = PaymentStatusPartiallyPaid
		s.AddDomainEvent(NewSalePaymentRecordedEvent(s, amount))
	}

	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetNotes sets free-text notes on the sale
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// IsPaid returns true if the sale is fully paid
func (s *Sale) IsPaid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// HasOutstandingCredit returns true if any credit remains unpaid
func (s *Sale) HasOutstandingCredit() bool {
	return s.CreditAmount.IsPositive()
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}
