package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// CustomerService handles customer management operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		exists, err := s.customerRepo.ExistsByPhone(ctx, req.Phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CUSTOMER_EXISTS", "A customer with this phone number already exists")
		}
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Address != "" {
		if err := customer.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != "" {
		if err := customer.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != "" {
		limit, err := valueobject.NewMoneyFromString(req.CreditLimit)
		if err != nil {
			return nil, err
		}
		if err := customer.SetCreditLimit(limit); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	if err := customer.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if req.GSTIN != nil {
		if err := customer.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// SetCreditLimit changes a customer's credit limit
func (s *CustomerService) SetCreditLimit(ctx context.Context, id uuid.UUID, req SetCreditLimitRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	limit, err := valueobject.NewMoneyFromString(req.CreditLimit)
	if err != nil {
		return nil, err
	}
	if err := customer.SetCreditLimit(limit); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with search and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	var customers []*partner.Customer
	var err error
	switch {
	case filter.Search != "":
		customers, err = s.customerRepo.SearchByName(ctx, filter.Search, domainFilter)
	case filter.ActiveOnly:
		customers, err = s.customerRepo.FindActive(ctx, domainFilter)
	default:
		customers, err = s.customerRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		responses = append(responses, ToCustomerResponse(customer))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return shared.ErrNotFound
	}

	if err := customer.Deactivate(); err != nil {
		return err
	}
	return s.customerRepo.Save(ctx, customer)
}
