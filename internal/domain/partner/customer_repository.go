package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// SearchByName finds customers whose name contains the given text
	SearchByName(ctx context.Context, name string, filter shared.Filter) ([]*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*Customer, error)

	// FindActive finds all active customers
	FindActive(ctx context.Context, filter shared.Filter) ([]*Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of customers
	Count(ctx context.Context) (int64, error)

	// ExistsByPhone checks whether a customer with the phone number exists
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}
