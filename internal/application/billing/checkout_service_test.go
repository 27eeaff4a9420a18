package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutFixture struct {
	saleRepo     *MockSaleRepository
	sequenceRepo *MockSequenceRepository
	settingsRepo *MockSettingsRepository
	customerRepo *MockCustomerRepository
	ledgerRepo   *MockLedgerRepository
	txManager    *MockTransactionManager
	service      *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		saleRepo:     new(MockSaleRepository),
		sequenceRepo: new(MockSequenceRepository),
		settingsRepo: new(MockSettingsRepository),
		customerRepo: new(MockCustomerRepository),
		ledgerRepo:   new(MockLedgerRepository),
		txManager:    new(MockTransactionManager),
	}
	f.service = NewCheckoutService(
		f.saleRepo, f.sequenceRepo, f.settingsRepo,
		f.customerRepo, f.ledgerRepo, f.txManager, zap.NewNop(),
	)
	return f
}

func testCustomer(t *testing.T, creditLimit string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Lakshmi Traders", "9876543210")
	require.NoError(t, err)
	limit, err := valueobject.NewMoneyFromString(creditLimit)
	require.NoError(t, err)
	require.NoError(t, customer.SetCreditLimit(limit))
	return customer
}

// sareeCheckout is a 1000 + 18% GST = 1180 single-item request
func sareeCheckout(customerID uuid.UUID, payment PaymentInput) CheckoutRequest {
	return CheckoutRequest{
		CustomerID: customerID,
		Items: []CreateSaleItemInput{{
			Name:           "Kanchipuram Saree",
			Quantity:       decimal.NewFromInt(1),
			UnitPrice:      "1000",
			TaxRatePercent: decimal.NewFromInt(18),
		}},
		Payment: payment,
	}
}

func TestCheckoutFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("cash sale persists with a drawn invoice number", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(7, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(nil)

		resp, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1180"}))
		require.NoError(t, err)

		assert.Regexp(t, `^\d{2}-\d{2}/AGT-007$`, resp.InvoiceNumber)
		assert.Equal(t, "1180.00", resp.TotalAmount)
		assert.Equal(t, "PAID", resp.PaymentStatus)
		f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("credit sale appends a ledger entry in the same transaction", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "5000")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.ledgerRepo.On("OutstandingBalance", ctx, customer.ID).Return(valueobject.Zero(), nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(1, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(nil)
		f.ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		resp, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "680", Credit: "500"}))
		require.NoError(t, err)

		assert.Equal(t, "PARTIALLY_PAID", resp.PaymentStatus)
		assert.Equal(t, "500.00", resp.CreditAmount)
		f.ledgerRepo.AssertCalled(t, "Append", ctx, mock.AnythingOfType("*ledger.Entry"))
	})

	t.Run("rejects payment that does not cover the total", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1000"}))
		assert.True(t, shared.IsCode(err, shared.CodePaymentMismatch))
		f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects credit beyond the customer limit", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "1000")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		outstanding, _ := valueobject.NewMoneyFromString("800")
		f.ledgerRepo.On("OutstandingBalance", ctx, customer.ID).Return(outstanding, nil)

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "680", Credit: "500"}))
		assert.True(t, shared.IsCode(err, shared.CodeCreditLimitExceeded))
	})

	t.Run("override flag bypasses the credit limit check", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(1, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(nil)
		f.ledgerRepo.On("OutstandingBalance", ctx, customer.ID).Return(valueobject.Zero(), nil)
		f.ledgerRepo.On("Append", ctx, mock.AnythingOfType("*ledger.Entry")).Return(nil)

		req := sareeCheckout(customer.ID, PaymentInput{Credit: "1180"})
		req.OverrideCreditLimit = true

		resp, err := f.service.Finalize(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "CREDIT", resp.PaymentStatus)
	})

	t.Run("no invoice number is drawn when the transaction cannot begin", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.txManager.On("WithinTransaction", ctx).Return(errors.New("begin failed"))

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1180"}))
		assert.Error(t, err)
		f.sequenceRepo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything, mock.Anything)
		f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("credit limit is enforced on the balance the transaction sees", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "1000")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(1, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(nil)

		// A concurrent credit sale lands between the early check and the
		// transactional read.
		outstanding, _ := valueobject.NewMoneyFromString("800")
		f.ledgerRepo.On("OutstandingBalance", ctx, customer.ID).Return(valueobject.Zero(), nil).Once()
		f.ledgerRepo.On("OutstandingBalance", ctx, customer.ID).Return(outstanding, nil).Once()

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "680", Credit: "500"}))
		assert.True(t, shared.IsCode(err, shared.CodeCreditLimitExceeded))
		f.ledgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("retries with a fresh number on sequence conflict", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(8, nil).Once()
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(9, nil).Once()
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		conflict := shared.NewDomainError(shared.CodeSequenceConflict, "invoice number taken")
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(conflict).Once()
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(nil).Once()

		resp, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1180"}))
		require.NoError(t, err)

		assert.Regexp(t, `AGT-009$`, resp.InvoiceNumber)
		f.saleRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("gives up after three conflicts", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(1, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		conflict := shared.NewDomainError(shared.CodeSequenceConflict, "invoice number taken")
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(conflict)

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1180"}))
		assert.True(t, shared.IsCode(err, shared.CodeSequenceExhausted))
		f.saleRepo.AssertNumberOfCalls(t, "Save", 3)
	})

	t.Run("non-conflict save error is not retried", func(t *testing.T) {
		f := newCheckoutFixture()
		customer := testCustomer(t, "0")

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.settingsRepo.On("InvoicePrefix", ctx).Return("AGT", nil)
		f.sequenceRepo.On("Next", ctx, mock.Anything, "AGT").Return(1, nil)
		f.txManager.On("WithinTransaction", ctx).Return(nil)
		dbErr := errors.New("connection lost")
		f.saleRepo.On("Save", ctx, mock.AnythingOfType("*billing.Sale")).Return(dbErr)

		_, err := f.service.Finalize(ctx, sareeCheckout(customer.ID, PaymentInput{Cash: "1180"}))
		assert.ErrorIs(t, err, dbErr)
		f.saleRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newCheckoutFixture()
		id := uuid.New()
		f.customerRepo.On("FindByID", ctx, id).Return(nil, nil)

		_, err := f.service.Finalize(ctx, sareeCheckout(id, PaymentInput{Cash: "1180"}))
		assert.True(t, shared.IsCode(err, "CUSTOMER_NOT_FOUND"))
	})
}

func TestCheckoutGetters(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByInvoiceNumber maps not found", func(t *testing.T) {
		f := newCheckoutFixture()
		f.saleRepo.On("FindByInvoiceNumber", ctx, "25-26/AGT-404").Return(nil, nil)

		_, err := f.service.GetByInvoiceNumber(ctx, "25-26/AGT-404")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("GetByID returns mapped response", func(t *testing.T) {
		f := newCheckoutFixture()
		sale, err := billing.NewSale(uuid.New(), "Test", time.Now())
		require.NoError(t, err)
		f.saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		resp, err := f.service.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, sale.ID, resp.ID)
	})
}
