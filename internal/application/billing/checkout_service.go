package billing

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

// maxSequenceAttempts bounds the invoice-number conflict retry loop. Each
// attempt draws a fresh number from the sequencer, so three failures in a row
// means something is systematically wrong, not just a concurrent checkout.
const maxSequenceAttempts = 3

// CheckoutService orchestrates sale finalization: building the sale, checking
// credit, drawing an invoice number, and persisting the sale together with
// its ledger entry in one transaction.
type CheckoutService struct {
	saleRepo     billing.SaleRepository
	sequenceRepo billing.SequenceRepository
	settingsRepo billing.SettingsRepository
	customerRepo partner.CustomerRepository
	ledgerRepo   ledger.LedgerRepository
	txManager    shared.TransactionManager
	logger       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	saleRepo billing.SaleRepository,
	sequenceRepo billing.SequenceRepository,
	settingsRepo billing.SettingsRepository,
	customerRepo partner.CustomerRepository,
	ledgerRepo ledger.LedgerRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		saleRepo:     saleRepo,
		sequenceRepo: sequenceRepo,
		settingsRepo: settingsRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Finalize validates and persists a sale from a checkout request. On success
// the sale has an invoice number, the payment status is set, and any credit
// portion is recorded in the customer's ledger. On any failure nothing is
// persisted.
func (s *CheckoutService) Finalize(ctx context.Context, req CheckoutRequest) (*SaleResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}

	sale, err := s.buildSale(customer, req)
	if err != nil {
		return nil, err
	}

	payment, err := parsePayment(req.Payment)
	if err != nil {
		return nil, err
	}

	// Early reject on the current balance; the authoritative check runs
	// again inside the persistence transaction.
	if payment.Credit.IsPositive() && !req.OverrideCreditLimit {
		outstanding, err := s.ledgerRepo.OutstandingBalance(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		if err := customer.CheckCredit(outstanding, payment.Credit); err != nil {
			return nil, err
		}
	}

	if err := sale.Finalize(payment); err != nil {
		return nil, err
	}

	prefix, err := s.settingsRepo.InvoicePrefix(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.persistWithRetry(ctx, sale, customer, payment, prefix, req.OverrideCreditLimit); err != nil {
		return nil, err
	}

	s.logger.Info("Sale finalized",
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.String("customer_id", customer.ID.String()),
		zap.String("total", sale.TotalAmount.StringFixed()),
		zap.String("status", sale.PaymentStatus.String()))

	response := ToSaleResponse(sale)
	return &response, nil
}

// persistWithRetry draws an invoice number and saves the sale, retrying with
// a fresh number on a uniqueness conflict. The number draw, the sale, its
// credit-limit check, and its ledger entry all live in one transaction: a
// rollback returns the number to the counter, so a failed checkout leaves no
// gap in the sequence, and the counter-row UPDATE lock serializes concurrent
// checkouts for the same year and prefix.
func (s *CheckoutService) persistWithRetry(
	ctx context.Context,
	sale *billing.Sale,
	customer *partner.Customer,
	payment billing.PaymentBreakdown,
	prefix string,
	overrideCreditLimit bool,
) error {
	fy := billing.FinancialYearOf(sale.InvoiceDate)

	var lastErr error
	for attempt := 1; attempt <= maxSequenceAttempts; attempt++ {
		err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			seq, err := s.sequenceRepo.Next(txCtx, fy, prefix)
			if err != nil {
				return err
			}
			if err := sale.AssignInvoiceNumber(billing.FormatInvoiceNumber(fy, prefix, seq)); err != nil {
				return err
			}
			if err := s.saleRepo.Save(txCtx, sale); err != nil {
				return err
			}
			if payment.Credit.IsPositive() {
				outstanding, err := s.ledgerRepo.OutstandingBalance(txCtx, customer.ID)
				if err != nil {
					return err
				}
				// The pre-transaction check read a snapshot that a concurrent
				// credit sale may have advanced, so the limit is enforced
				// again on the balance this transaction sees.
				if !overrideCreditLimit {
					if err := customer.CheckCredit(outstanding, payment.Credit); err != nil {
						return err
					}
				}
				entry, err := ledger.NewCreditSaleEntry(customer.ID, payment.Credit, outstanding, sale.InvoiceNumber, sale.ID)
				if err != nil {
					return err
				}
				return s.ledgerRepo.Append(txCtx, entry)
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if !shared.IsCode(err, shared.CodeSequenceConflict) {
			return err
		}

		s.logger.Warn("Invoice number conflict, retrying",
			zap.String("invoice_number", sale.InvoiceNumber),
			zap.Int("attempt", attempt))
		lastErr = err
	}

	s.logger.Error("Invoice numbering exhausted retries",
		zap.String("prefix", prefix),
		zap.String("financial_year", fy.Code()),
		zap.Error(lastErr))

	return shared.NewDomainError(shared.CodeSequenceExhausted,
		"Could not allocate a unique invoice number, please retry the sale")
}

// buildSale constructs the draft sale from the request
func (s *CheckoutService) buildSale(customer *partner.Customer, req CheckoutRequest) (*billing.Sale, error) {
	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	sale, err := billing.NewSale(customer.ID, customer.Name, invoiceDate)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		unitPrice, err := valueobject.NewMoneyFromString(item.UnitPrice)
		if err != nil {
			return nil, err
		}
		if _, err := sale.AddItem(item.ProductID, item.Name, item.Quantity, unitPrice, item.DiscountPercent, item.TaxRatePercent); err != nil {
			return nil, err
		}
	}

	switch {
	case req.DiscountPercent != nil:
		if err := sale.ApplyDiscountPercent(*req.DiscountPercent); err != nil {
			return nil, err
		}
	case req.DiscountAmount != "":
		discount, err := valueobject.NewMoneyFromString(req.DiscountAmount)
		if err != nil {
			return nil, err
		}
		if err := sale.ApplyFlatDiscount(discount); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		sale.SetNotes(req.Notes)
	}

	return sale, nil
}

// GetByID retrieves a sale by ID
func (s *CheckoutService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.ErrNotFound
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByInvoiceNumber retrieves a sale by its invoice number
func (s *CheckoutService) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.ErrNotFound
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with pagination
func (s *CheckoutService) List(ctx context.Context, filter SaleListFilter) (*shared.Paginated[SaleListItemResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var sales []*billing.Sale
	var err error
	if filter.CustomerID != nil {
		sales, err = s.saleRepo.FindByCustomerID(ctx, *filter.CustomerID, domainFilter)
	} else {
		sales, err = s.saleRepo.List(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]SaleListItemResponse, 0, len(sales))
	for _, sale := range sales {
		items = append(items, ToSaleListItemResponse(sale))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// parsePayment converts the string payment input to a validated breakdown.
// Empty strings mean zero.
func parsePayment(input PaymentInput) (billing.PaymentBreakdown, error) {
	parse := func(s string) (valueobject.Money, error) {
		if s == "" {
			return valueobject.Zero(), nil
		}
		return valueobject.NewMoneyFromString(s)
	}

	cash, err := parse(input.Cash)
	if err != nil {
		return billing.PaymentBreakdown{}, err
	}
	upi, err := parse(input.UPI)
	if err != nil {
		return billing.PaymentBreakdown{}, err
	}
	credit, err := parse(input.Credit)
	if err != nil {
		return billing.PaymentBreakdown{}, err
	}

	breakdown := billing.PaymentBreakdown{Cash: cash, UPI: upi, Credit: credit}
	return breakdown, breakdown.Validate()
}
