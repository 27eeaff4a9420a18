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
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock implementation of ledger.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*ledger.Entry, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) FindByCustomerIDAndDateRange(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]*ledger.Entry, error) {
	args := m.Called(ctx, customerID, from, to)
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) OutstandingBalance(ctx context.Context, customerID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockLedgerRepository) BalanceAsOf(ctx context.Context, customerID uuid.UUID, asOf time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, customerID, asOf)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockLedgerRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of billing.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *billing.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *billing.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Sale, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*billing.Sale, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]*billing.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindWithOutstandingCredit(ctx context.Context, customerID uuid.UUID) ([]*billing.Sale, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*billing.Sale), args.Error(1)
}

func (m *MockSaleRepository) List(ctx context.Context, filter shared.Filter) ([]*billing.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*billing.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchByName(ctx context.Context, name string, filter shared.Filter) ([]*partner.Customer, error) {
	args := m.Called(ctx, name, filter)
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindActive(ctx context.Context, filter shared.Filter) ([]*partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

// MockTransactionManager runs the callback inline, outside any real
// transaction. A mocked non-nil error simulates a failure to begin, in which
// case the callback never runs.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
