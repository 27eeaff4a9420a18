package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer with credit limit", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, "9876543210").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:        "Lakshmi Traders",
			Phone:       "9876543210",
			CreditLimit: "5000",
		})
		require.NoError(t, err)

		assert.Equal(t, "Lakshmi Traders", resp.Name)
		assert.Equal(t, "5000.00", resp.CreditLimit)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, "9876543210").Return(true, nil)

		_, err := service.Create(ctx, CreateCustomerRequest{Name: "Dup", Phone: "9876543210"})
		assert.True(t, shared.IsCode(err, "CUSTOMER_EXISTS"))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid GSTIN", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		_, err := service.Create(ctx, CreateCustomerRequest{Name: "Test", GSTIN: "BADGSTIN1234567"})
		assert.True(t, shared.IsCode(err, "INVALID_GSTIN"))
	})
}

func TestCustomerServiceSetCreditLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the limit", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer, err := partner.NewCustomer("Test", "9876543210")
		require.NoError(t, err)

		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, customer).Return(nil)

		resp, err := service.SetCreditLimit(ctx, customer.ID, SetCreditLimitRequest{CreditLimit: "2500"})
		require.NoError(t, err)
		assert.Equal(t, "2500.00", resp.CreditLimit)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, nil)

		_, err := service.SetCreditLimit(ctx, id, SetCreditLimitRequest{CreditLimit: "2500"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
