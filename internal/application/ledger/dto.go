package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/ledger"
)

// RecordPaymentRequest represents a payment received against a customer's
// outstanding credit
type RecordPaymentRequest struct {
	Amount        string `json:"amount" binding:"required,money"`
	InvoiceNumber string `json:"invoice_number"` // optional: settle a specific invoice first
	Remark        string `json:"remark" binding:"omitempty,max=500"`
}

// PaymentAllocation shows how much of a payment went to one invoice
type PaymentAllocation struct {
	InvoiceNumber string `json:"invoice_number"`
	Applied       string `json:"applied"`
	Remaining     string `json:"remaining"`
}

// RecordPaymentResponse represents the result of recording a payment
type RecordPaymentResponse struct {
	CustomerID  uuid.UUID           `json:"customer_id"`
	Amount      string              `json:"amount"`
	Allocations []PaymentAllocation `json:"allocations"`
	Outstanding string              `json:"outstanding"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID            uuid.UUID `json:"id"`
	EntryType     string    `json:"entry_type"`
	Amount        string    `json:"amount"`
	SignedAmount  string    `json:"signed_amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	Remark        string    `json:"remark,omitempty"`
	EntryDate     time.Time `json:"entry_date"`
}

// BalanceResponse represents a customer's outstanding balance
type BalanceResponse struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	Outstanding string    `json:"outstanding"`
	CreditLimit string    `json:"credit_limit"`
	Available   string    `json:"available"`
}

// AgingResponse represents a customer's outstanding credit by age
type AgingResponse struct {
	CustomerID        uuid.UUID `json:"customer_id"`
	Current           string    `json:"current"`             // 0-30 days
	ThirtyPlus        string    `json:"thirty_plus"`         // 31-60 days
	SixtyPlus         string    `json:"sixty_plus"`          // 61-90 days
	NinetyPlus        string    `json:"ninety_plus"`         // over 90 days
	Total             string    `json:"total"`
	OldestInvoiceDays int       `json:"oldest_invoice_days"`
	Overdue           bool      `json:"overdue"`
}

// StatementRequest filters a customer statement by date range
type StatementRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// StatementResponse represents a customer's ledger statement
type StatementResponse struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Entries      []EntryResponse `json:"entries"`
	Opening      string          `json:"opening_balance"`
	Closing      string          `json:"closing_balance"`
}

// ToEntryResponse converts a domain entry to its response shape
func ToEntryResponse(entry *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:            entry.ID,
		EntryType:     entry.EntryType.String(),
		Amount:        entry.Amount.StringFixed(),
		SignedAmount:  entry.SignedAmount().StringFixed(),
		BalanceBefore: entry.BalanceBefore.StringFixed(),
		BalanceAfter:  entry.BalanceAfter.StringFixed(),
		InvoiceNumber: entry.InvoiceNumber,
		Remark:        entry.Remark,
		EntryDate:     entry.EntryDate,
	}
}
