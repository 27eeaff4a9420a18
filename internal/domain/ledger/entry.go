package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// EntryType represents the type of credit ledger entry
type EntryType string

const (
	// EntryTypeCreditSale records credit extended at the point of sale (balance increase)
	EntryTypeCreditSale EntryType = "CREDIT_SALE"
	// EntryTypeCreditPayment records a payment received against outstanding credit (balance decrease)
	EntryTypeCreditPayment EntryType = "CREDIT_PAYMENT"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeCreditSale, EntryTypeCreditPayment:
		return true
	}
	return false
}

// IsIncrease returns true if this entry type increases the customer's outstanding balance
func (t EntryType) IsIncrease() bool {
	return t == EntryTypeCreditSale
}

// Entry is an immutable record of a customer credit balance change. The
// ledger is append-only: once created, entries are never modified or deleted,
// and corrections are made with new entries. The customer's outstanding
// balance is always the sum of signed entry amounts, never a stored figure.
type Entry struct {
	shared.BaseEntity
	CustomerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	EntryType     EntryType         `gorm:"type:varchar(20);not null"`
	Amount        valueobject.Money `gorm:"type:decimal(12,2);not null"` // always positive, direction determined by type
	BalanceBefore valueobject.Money `gorm:"type:decimal(12,2);not null"`
	BalanceAfter  valueobject.Money `gorm:"type:decimal(12,2);not null"`
	InvoiceNumber string            `gorm:"type:varchar(50);index"` // invoice this entry settles or originates from
	SaleID        *uuid.UUID        `gorm:"type:uuid"`
	Remark        string            `gorm:"type:varchar(500)"`
	EntryDate     time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "customer_transactions"
}

// NewEntry creates a ledger entry with an explicit type
func NewEntry(
	customerID uuid.UUID,
	entryType EntryType,
	amount valueobject.Money,
	balanceBefore valueobject.Money,
	invoiceNumber string,
) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid ledger entry type")
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Ledger entry amount must be positive")
	}

	balanceAfter := balanceBefore.Add(amount)
	if !entryType.IsIncrease() {
		balanceAfter = balanceBefore.Subtract(amount)
	}

	return &Entry{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerID:    customerID,
		EntryType:     entryType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		InvoiceNumber: invoiceNumber,
		EntryDate:     time.Now(),
	}, nil
}

// NewCreditSaleEntry records credit extended during a sale
func NewCreditSaleEntry(customerID uuid.UUID, amount, balanceBefore valueobject.Money, invoiceNumber string, saleID uuid.UUID) (*Entry, error) {
	entry, err := NewEntry(customerID, EntryTypeCreditSale, amount, balanceBefore, invoiceNumber)
	if err != nil {
		return nil, err
	}
	entry.SaleID = &saleID
	return entry, nil
}

// NewCreditPaymentEntry records a payment against outstanding credit
func NewCreditPaymentEntry(customerID uuid.UUID, amount, balanceBefore valueobject.Money, invoiceNumber, remark string) (*Entry, error) {
	entry, err := NewEntry(customerID, EntryTypeCreditPayment, amount, balanceBefore, invoiceNumber)
	if err != nil {
		return nil, err
	}
	entry.Remark = remark
	return entry, nil
}

// SignedAmount returns the amount with the sign implied by the entry type:
// positive for credit sales, negative for payments
func (e *Entry) SignedAmount() valueobject.Money {
	if e.EntryType.IsIncrease() {
		return e.Amount
	}
	return e.Amount.Negate()
}
