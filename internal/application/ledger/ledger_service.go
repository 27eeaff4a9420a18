package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopdesk/backend/internal/domain/ledger"
	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// LedgerService handles customer credit ledger operations: recording
// payments, deriving balances, and building aging and statement views
type LedgerService struct {
	ledgerRepo   ledger.LedgerRepository
	saleRepo     billing.SaleRepository
	customerRepo partner.CustomerRepository
	txManager    shared.TransactionManager
	logger       *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	ledgerRepo ledger.LedgerRepository,
	saleRepo billing.SaleRepository,
	customerRepo partner.CustomerRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// RecordPayment applies a received payment against a customer's outstanding
// invoices, oldest first, and appends the matching ledger entries. A payment
// larger than the total outstanding is rejected; nothing is persisted on
// failure. If the request names an invoice, that invoice is settled first and
// the amount may not exceed its outstanding credit.
func (s *LedgerService) RecordPayment(ctx context.Context, customerID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	amount, err := valueobject.NewMoneyFromString(req.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidAmount, "Payment amount must be positive")
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	// Reading the outstanding invoices and checking the limits inside the
	// transaction keeps the overpayment decision on the same snapshot the
	// allocation writes against.
	var allocations []PaymentAllocation
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		sales, err := s.saleRepo.FindWithOutstandingCredit(txCtx, customerID)
		if err != nil {
			return err
		}

		if req.InvoiceNumber != "" {
			target := findSale(sales, req.InvoiceNumber)
			if target == nil {
				return shared.NewDomainError("INVOICE_NOT_FOUND",
					"Invoice "+req.InvoiceNumber+" has no outstanding credit for this customer")
			}
			if amount.GreaterThan(target.OutstandingCredit()) {
				return shared.NewDomainError(shared.CodeOverpaymentRejected,
					"Payment exceeds the outstanding amount of invoice "+req.InvoiceNumber)
			}
			sales = prioritizeInvoice(sales, req.InvoiceNumber)
		}

		total := valueobject.Zero()
		for _, sale := range sales {
			total = total.Add(sale.OutstandingCredit())
		}
		if amount.GreaterThan(total) {
			return shared.NewDomainError(shared.CodeOverpaymentRejected,
				"Payment exceeds the customer's total outstanding credit")
		}

		balance, err := s.ledgerRepo.OutstandingBalance(txCtx, customerID)
		if err != nil {
			return err
		}

		remaining := amount
		for _, sale := range sales {
			if remaining.IsZero() {
				break
			}

			applied := sale.OutstandingCredit()
			if remaining.LessThan(applied) {
				applied = remaining
			}

			if err := sale.ApplyPayment(applied); err != nil {
				return err
			}
			if err := s.saleRepo.Update(txCtx, sale); err != nil {
				return err
			}

			entry, err := ledger.NewCreditPaymentEntry(customerID, applied, balance, sale.InvoiceNumber, req.Remark)
			if err != nil {
				return err
			}
			if err := s.ledgerRepo.Append(txCtx, entry); err != nil {
				return err
			}

			balance = entry.BalanceAfter
			remaining = remaining.Subtract(applied)
			allocations = append(allocations, PaymentAllocation{
				InvoiceNumber: sale.InvoiceNumber,
				Applied:       applied.StringFixed(),
				Remaining:     sale.OutstandingCredit().StringFixed(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outstanding, err := s.ledgerRepo.OutstandingBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("customer_id", customerID.String()),
		zap.String("amount", amount.StringFixed()),
		zap.Int("invoices_settled", len(allocations)))

	return &RecordPaymentResponse{
		CustomerID:  customerID,
		Amount:      amount.StringFixed(),
		Allocations: allocations,
		Outstanding: outstanding.StringFixed(),
	}, nil
}

// Balance returns the customer's outstanding credit and headroom
func (s *LedgerService) Balance(ctx context.Context, customerID uuid.UUID) (*BalanceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	outstanding, err := s.ledgerRepo.OutstandingBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}

	available := customer.CreditLimit.Subtract(outstanding)
	if available.IsNegative() {
		available = valueobject.Zero()
	}

	return &BalanceResponse{
		CustomerID:  customerID,
		Outstanding: outstanding.StringFixed(),
		CreditLimit: customer.CreditLimit.StringFixed(),
		Available:   available.StringFixed(),
	}, nil
}

// Aging buckets the customer's unpaid invoices by age as of now
func (s *LedgerService) Aging(ctx context.Context, customerID uuid.UUID) (*AgingResponse, error) {
	sales, err := s.saleRepo.FindWithOutstandingCredit(ctx, customerID)
	if err != nil {
		return nil, err
	}

	asOf := time.Now()
	buckets := ledger.NewAgingBuckets()
	for _, sale := range sales {
		buckets.Accumulate(sale.OutstandingCredit(), sale.InvoiceDate, asOf)
	}

	return &AgingResponse{
		CustomerID:        customerID,
		Current:           buckets.Current.StringFixed(),
		ThirtyPlus:        buckets.ThirtyPlus.StringFixed(),
		SixtyPlus:         buckets.SixtyPlus.StringFixed(),
		NinetyPlus:        buckets.NinetyPlus.StringFixed(),
		Total:             buckets.Total.StringFixed(),
		OldestInvoiceDays: buckets.OldestInvoiceDays,
		Overdue:           buckets.IsOverdue(),
	}, nil
}

// Statement returns the customer's ledger entries for a date range with the
// opening and closing balances. The opening balance carries everything posted
// before the range, so an empty range still reports what the customer owes.
func (s *LedgerService) Statement(ctx context.Context, customerID uuid.UUID, req StatementRequest) (*StatementResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	from, to := req.From, req.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -3, 0)
	}

	opening, err := s.ledgerRepo.BalanceAsOf(ctx, customerID, from)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindByCustomerIDAndDateRange(ctx, customerID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	closing := opening
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
		closing = closing.Add(entry.SignedAmount())
	}

	return &StatementResponse{
		CustomerID:   customerID,
		CustomerName: customer.Name,
		From:         from,
		To:           to,
		Entries:      responses,
		Opening:      opening.StringFixed(),
		Closing:      closing.StringFixed(),
	}, nil
}

// History returns the customer's ledger entries, newest first
func (s *LedgerService) History(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[EntryResponse], error) {
	entries, err := s.ledgerRepo.FindByCustomerID(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ledgerRepo.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToEntryResponse(entry))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// prioritizeInvoice moves the named invoice to the front of the allocation
// order, keeping the remainder oldest-first
func prioritizeInvoice(sales []*billing.Sale, invoiceNumber string) []*billing.Sale {
	if invoiceNumber == "" {
		return sales
	}
	for i, sale := range sales {
		if sale.InvoiceNumber == invoiceNumber {
			reordered := make([]*billing.Sale, 0, len(sales))
			reordered = append(reordered, sale)
			reordered = append(reordered, sales[:i]...)
			reordered = append(reordered, sales[i+1:]...)
			return reordered
		}
	}
	return sales
}

// findSale returns the sale carrying the given invoice number, or nil
func findSale(sales []*billing.Sale, invoiceNumber string) *billing.Sale {
	for _, sale := range sales {
		if sale.InvoiceNumber == invoiceNumber {
			return sale
		}
	}
	return nil
}
